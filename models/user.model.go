package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Farmers list products; buyers browse them and hold a cart.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// User represents a marketplace account.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Type     string             `bson:"type" json:"type"` // "farmer" or "buyer"
}
