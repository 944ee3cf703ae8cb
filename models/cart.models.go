package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents a line item in a cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart represents a user's shopping cart. One cart per user, created lazily
// on the first add.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Items  []CartItem         `bson:"items" json:"items"`
}

// ExpandedCartItem is a line item joined with the product fields a cart page
// needs.
type ExpandedCartItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Image     string             `json:"image,omitempty"`
}

// ExpandedCart is the read-side view of a cart.
type ExpandedCart struct {
	ID     primitive.ObjectID `json:"id"`
	UserID primitive.ObjectID `json:"userId"`
	Items  []ExpandedCartItem `json:"items"`
}
