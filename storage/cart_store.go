package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmmarket/apperr"
	"farmmarket/models"
)

// CartStore persists shopping carts.
type CartStore interface {
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ExpandedCart, error)
}

// MongoCartStore is the MongoDB-backed CartStore. It reads the products
// collection to expand line items on the read path.
type MongoCartStore struct {
	carts    *mongo.Collection
	products *mongo.Collection
}

// NewMongoCartStore creates a MongoCartStore over the carts and products
// collections.
func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{
		carts:    db.Collection("carts"),
		products: db.Collection("products"),
	}
}

// AddItem merges a line item into the user's cart. The append runs first
// with a filter that only matches a cart not already holding the product,
// so two concurrent first adds of one product cannot both append: the loser
// either matches nothing and falls through to the increment, or trips the
// unique cart owner index instead of creating a second cart. The positional
// $inc is atomic, so concurrent increments cannot be lost.
func (s *MongoCartStore) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	item := models.CartItem{ProductID: productID, Quantity: quantity}
	merged := false
	for attempts := 0; attempts < 3 && !merged; attempts++ {
		result, err := s.carts.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": productID}},
			bson.M{"$push": bson.M{"items": item}},
			options.Update().SetUpsert(true),
		)
		switch {
		case err != nil && !mongo.IsDuplicateKeyError(err):
			return nil, apperr.Dependency("Error updating cart", err)
		case err == nil && (result.MatchedCount > 0 || result.UpsertedCount > 0):
			merged = true
			continue
		}

		// The cart exists and already holds the product.
		incResult, err := s.carts.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": productID},
			bson.M{"$inc": bson.M{"items.$.quantity": quantity}},
		)
		if err != nil {
			return nil, apperr.Dependency("Error updating cart", err)
		}
		if incResult.MatchedCount > 0 {
			merged = true
			continue
		}
		// A concurrent remove took the line item between the two updates;
		// start over with the append.
	}
	if !merged {
		return nil, apperr.Dependency("Error updating cart", errors.New("cart update contention"))
	}

	var cart models.Cart
	if err := s.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, apperr.Dependency("Error reading cart", err)
	}
	return &cart, nil
}

// RemoveItem pulls a line item out of the user's cart.
func (s *MongoCartStore) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	result, err := s.carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}},
	)
	if err != nil {
		return nil, apperr.Dependency("Error updating cart", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperr.NotFound("Cart not found")
	}

	var cart models.Cart
	if err := s.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, apperr.Dependency("Error reading cart", err)
	}
	return &cart, nil
}

// FindByUser returns the user's cart with each line item expanded to the
// product's name, price, and image. Products deleted since they were added
// keep their line item but carry empty product fields.
func (s *MongoCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ExpandedCart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Cart not found")
		}
		return nil, apperr.Dependency("Error fetching cart", err)
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) > 0 {
		cursor, err := s.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, apperr.Dependency("Error fetching cart products", err)
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			return nil, apperr.Dependency("Error reading cart products", err)
		}
		for _, p := range products {
			byID[p.ID] = p
		}
	}

	expanded := &models.ExpandedCart{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.ExpandedCartItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		entry := models.ExpandedCartItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := byID[item.ProductID]; ok {
			entry.Name = p.Name
			entry.Price = p.Price
			entry.Image = p.Image
		}
		expanded.Items = append(expanded.Items, entry)
	}
	return expanded, nil
}
