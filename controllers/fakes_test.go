package controllers

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/apperr"
	"farmmarket/models"
)

// Map-backed fakes for the storage interfaces and external clients.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, apperr.Conflict("User already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
	users    *fakeUserStore
}

func newFakeProductStore(users *fakeUserStore) *fakeProductStore {
	return &fakeProductStore{
		products: make(map[primitive.ObjectID]*models.Product),
		users:    users,
	}
}

func (f *fakeProductStore) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (f *fakeProductStore) FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Product, error) {
	var products []models.Product
	for _, p := range f.products {
		if p.Farmer == farmerID {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeProductStore) FindAllWithFarmer(ctx context.Context) ([]models.ProductWithFarmer, error) {
	var products []models.ProductWithFarmer
	for _, p := range f.products {
		entry := models.ProductWithFarmer{Product: *p}
		if u, ok := f.users.users[p.Farmer]; ok {
			entry.FarmerName = u.Name
			entry.FarmerEmail = u.Email
		}
		products = append(products, entry)
	}
	return products, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return apperr.NotFound("Product not found")
	}
	delete(f.products, id)
	return nil
}

type fakeCartStore struct {
	carts    map[primitive.ObjectID]*models.Cart
	products map[primitive.ObjectID]models.Product
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		carts:    make(map[primitive.ObjectID]*models.Cart),
		products: make(map[primitive.ObjectID]models.Product),
	}
}

func (f *fakeCartStore) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID}
		f.carts[userID] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return cart, nil
		}
	}
	cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	return cart, nil
}

func (f *fakeCartStore) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperr.NotFound("Cart not found")
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return cart, nil
}

func (f *fakeCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ExpandedCart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperr.NotFound("Cart not found")
	}
	expanded := &models.ExpandedCart{ID: cart.ID, UserID: cart.UserID}
	for _, item := range cart.Items {
		entry := models.ExpandedCartItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := f.products[item.ProductID]; ok {
			entry.Name = p.Name
			entry.Price = p.Price
			entry.Image = p.Image
		}
		expanded.Items = append(expanded.Items, entry)
	}
	return expanded, nil
}

type fakeImageStore struct {
	uploads    int
	deleted    []string
	failDelete bool
}

func (f *fakeImageStore) Upload(ctx context.Context, file io.Reader, filename string) (string, string, error) {
	f.uploads++
	return "https://images.test/" + filename, "farmers-market/" + filename, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, publicID string) error {
	if f.failDelete {
		return errors.New("image service unavailable")
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	err          error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.GatewayOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amount
	f.lastCurrency = currency
	f.lastReceipt = receipt
	return &models.GatewayOrder{ID: "order_test123", Amount: amount, Currency: currency}, nil
}
