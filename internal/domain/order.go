package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus tracks the payment lifecycle of a simple order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// OrderItem is a snapshot of a catalog product at order creation time.
// Name and price are copied rather than referenced so later catalog edits
// do not rewrite order history.
type OrderItem struct {
	Product primitive.ObjectID `json:"product" bson:"product"`
	Name    string             `json:"name" bson:"name"`
	Qty     int                `json:"qty" bson:"qty"`
	Price   float64            `json:"price" bson:"price"`
}

// Order is a catalog-linked order with shipping address and payment tracking.
type Order struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"order_items"`
	ShippingAddress Address            `json:"shippingAddress" bson:"shipping_address"`
	PaymentMethod   string             `json:"paymentMethod" bson:"payment_method"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus" bson:"payment_status"`
	IsDelivered     bool               `json:"isDelivered" bson:"is_delivered"`
	TotalPrice      float64            `json:"totalPrice" bson:"total_price"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}
