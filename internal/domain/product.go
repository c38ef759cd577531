package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxProductImages caps the number of image URLs stored per product.
const MaxProductImages = 5

// Product represents a product in the catalog
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description" bson:"description"`
	Images      []string           `json:"images" bson:"images"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Colors      []string           `json:"colors" bson:"colors"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductType is a taxonomy entry used to populate catalog filters and
// admin dropdowns. The Type name is unique across the collection.
type ProductType struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type      string             `json:"type" bson:"type"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductColor is a taxonomy entry pairing a unique color name with its hex code.
type ProductColor struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	HexCode   string             `json:"hexCode" bson:"hex_code"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
