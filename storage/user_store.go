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

// UserStore persists marketplace accounts.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// MongoUserStore is the MongoDB-backed UserStore.
type MongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore creates a MongoUserStore over the users collection.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{collection: db.Collection("users")}
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		// The unique email index is the backstop for racing registrations.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Dependency("Error creating user", err)
	}
	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Dependency("Error fetching user", err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Dependency("Error fetching user", err)
	}
	return &user, nil
}

func (s *MongoUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, apperr.Dependency("Error checking email", err)
	}
	return count > 0, nil
}
