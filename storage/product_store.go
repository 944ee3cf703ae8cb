package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"farmmarket/apperr"
	"farmmarket/models"
)

// ProductStore persists the product catalog.
type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Product, error)
	FindAllWithFarmer(ctx context.Context) ([]models.ProductWithFarmer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoProductStore is the MongoDB-backed ProductStore.
type MongoProductStore struct {
	collection *mongo.Collection
}

// NewMongoProductStore creates a MongoProductStore over the products
// collection.
func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{collection: db.Collection("products")}
}

func (s *MongoProductStore) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, product); err != nil {
		return nil, apperr.Dependency("Error creating product", err)
	}
	return product, nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Dependency("Error fetching product", err)
	}
	return &product, nil
}

func (s *MongoProductStore) FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"farmer": farmerID})
	if err != nil {
		return nil, apperr.Dependency("Error fetching products", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperr.Dependency("Error reading products", err)
	}
	return products, nil
}

// FindAllWithFarmer joins each product with its owner's name and email for
// the buyer-facing catalog.
func (s *MongoProductStore) FindAllWithFarmer(ctx context.Context) ([]models.ProductWithFarmer, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "farmer",
			"foreignField": "_id",
			"as":           "farmer_doc",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$farmer_doc",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$set", Value: bson.M{
			"farmer_name":  "$farmer_doc.name",
			"farmer_email": "$farmer_doc.email",
		}}},
		{{Key: "$unset", Value: "farmer_doc"}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Dependency("Error fetching products", err)
	}
	defer cursor.Close(ctx)

	var products []models.ProductWithFarmer
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperr.Dependency("Error reading products", err)
	}
	return products, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Dependency("Error deleting product", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}
