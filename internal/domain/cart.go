package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line in a cart. Quantity is always positive; a line
// whose quantity would drop to zero is removed instead.
type CartItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart holds the mutable item list for one user. TotalPrice is derived from
// current catalog prices on every mutation and is never settable directly.
type Cart struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"user_id"`
	Items      []CartItem         `json:"items" bson:"items"`
	TotalPrice float64            `json:"totalPrice" bson:"total_price"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updated_at"`
}

// FindItem returns the index of the line holding productID, or -1.
func (c *Cart) FindItem(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// PopulatedCartItem is a cart line joined with its product document for
// responses; the product may be nil when the catalog entry was deleted
// after the item was added.
type PopulatedCartItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Product   *Product           `json:"product,omitempty"`
}

// PopulatedCart is the response shape of a cart read.
type PopulatedCart struct {
	ID         primitive.ObjectID  `json:"_id"`
	UserID     primitive.ObjectID  `json:"userId"`
	Items      []PopulatedCartItem `json:"items"`
	TotalPrice float64             `json:"totalPrice"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}
