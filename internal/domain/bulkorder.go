package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placement is a fixed print location on a garment.
type Placement string

const (
	PlacementLeft    Placement = "Left"
	PlacementRight   Placement = "Right"
	PlacementFrontA4 Placement = "Front A4"
	PlacementFrontA3 Placement = "Front A3"
	PlacementBackA4  Placement = "Back A4"
	PlacementBackA3  Placement = "Back A3"
)

// Placements lists every valid placement, in display order.
var Placements = []Placement{
	PlacementLeft,
	PlacementRight,
	PlacementFrontA4,
	PlacementFrontA3,
	PlacementBackA4,
	PlacementBackA3,
}

// Valid reports whether p is one of the fixed placements.
func (p Placement) Valid() bool {
	for _, known := range Placements {
		if p == known {
			return true
		}
	}
	return false
}

// BulkOrderStatus tracks a bulk order through fulfilment.
type BulkOrderStatus string

const (
	BulkOrderPending    BulkOrderStatus = "Pending"
	BulkOrderProcessing BulkOrderStatus = "Processing"
	BulkOrderShipped    BulkOrderStatus = "Shipped"
	BulkOrderDelivered  BulkOrderStatus = "Delivered"
	BulkOrderCancelled  BulkOrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known bulk order statuses.
func (s BulkOrderStatus) Valid() bool {
	switch s {
	case BulkOrderPending, BulkOrderProcessing, BulkOrderShipped,
		BulkOrderDelivered, BulkOrderCancelled:
		return true
	}
	return false
}

// BulkOrderItem is one color/size/placement cell of the order matrix.
// Price is the pre-aggregated line price, not a unit price.
type BulkOrderItem struct {
	Color     string    `json:"color" bson:"color"`
	Size      string    `json:"size" bson:"size"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Price     float64   `json:"price" bson:"price"`
	Placement Placement `json:"placement" bson:"placement"`
}

// BulkOrder is an ad hoc print order independent of the product catalog.
// UserID is empty for guest orders. TotalPrice is always recomputed from the
// item prices on save.
type BulkOrder struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      string             `json:"userId,omitempty" bson:"user_id,omitempty"`
	Items       []BulkOrderItem    `json:"items" bson:"items"`
	DesignImage string             `json:"designImage,omitempty" bson:"design_image,omitempty"`
	TotalPrice  float64            `json:"totalPrice" bson:"total_price"`
	Status      BulkOrderStatus    `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// RecomputeTotal derives TotalPrice from the item prices. Line prices are
// already quantity-aggregated, so they are summed as-is.
func (o *BulkOrder) RecomputeTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	o.TotalPrice = total
}

// ExpandQuantityMatrix turns a color×size quantity matrix crossed with the
// selected placements into bulk order items: one item per placement per
// nonzero cell, priced at quantity times the per-unit rate. This mirrors the
// order designer's client-side expansion.
func ExpandQuantityMatrix(quantities map[string]map[string]int, placements []Placement, unitPrice float64) []BulkOrderItem {
	var items []BulkOrderItem
	for color, bySize := range quantities {
		for size, qty := range bySize {
			if qty <= 0 {
				continue
			}
			for _, placement := range placements {
				items = append(items, BulkOrderItem{
					Color:     color,
					Size:      size,
					Quantity:  qty,
					Price:     float64(qty) * unitPrice,
					Placement: placement,
				})
			}
		}
	}
	return items
}
