package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a farmer's listing.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Farmer      primitive.ObjectID `bson:"farmer" json:"farmer"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	// ImagePublicID addresses the stored image on the hosting service so
	// deletion can find it again.
	ImagePublicID string `bson:"image_public_id,omitempty" json:"-"`
}

// ProductWithFarmer augments a product with its owner's public details for
// the buyer-facing catalog.
type ProductWithFarmer struct {
	Product     `bson:",inline"`
	FarmerName  string `bson:"farmer_name" json:"farmerName"`
	FarmerEmail string `bson:"farmer_email" json:"farmerEmail"`
}
