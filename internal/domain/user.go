package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the shipping address sub-document embedded in users and orders.
type Address struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// User represents a storefront account. The password hash is excluded from
// JSON serialization so it can never leak into a response body.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Phone        string             `json:"phone" bson:"phone"`
	Address      Address            `json:"address" bson:"address"`
	IsAdmin      bool               `json:"isAdmin" bson:"is_admin"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Role maps the admin flag onto the role claim carried in bearer tokens.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}
