package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/models"
)

type catalogFixture struct {
	users    *fakeUserStore
	products *fakeProductStore
	images   *fakeImageStore
	router   *mux.Router
}

func newCatalogFixture() *catalogFixture {
	users := newFakeUserStore()
	products := newFakeProductStore(users)
	images := &fakeImageStore{}
	pc := NewProductController(products, users, images)

	router := mux.NewRouter()
	router.HandleFunc("/api/products/add", pc.AddProduct).Methods("POST")
	router.HandleFunc("/api/products", pc.ListAll).Methods("GET")
	router.HandleFunc("/api/products/{farmerId}", pc.ListByFarmer).Methods("GET")
	router.HandleFunc("/api/products/{id}", pc.DeleteProduct).Methods("DELETE")

	return &catalogFixture{users: users, products: products, images: images, router: router}
}

func (f *catalogFixture) addUser(t *testing.T, name, email, role string) primitive.ObjectID {
	t.Helper()
	user, err := f.users.Insert(context.Background(), &models.User{Name: name, Email: email, Type: role})
	require.NoError(t, err)
	return user.ID
}

func (f *catalogFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (f *catalogFixture) addProduct(t *testing.T, fields map[string]string, imageName string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, imageName)
	req := httptest.NewRequest(http.MethodPost, "/api/products/add", body)
	req.Header.Set("Content-Type", contentType)
	return f.do(req)
}

func TestAddProductMissingFields(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{"name": "Tomato", "farmerId": farmerID.Hex()}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductRejectsBuyerOwner(t *testing.T) {
	f := newCatalogFixture()
	buyerID := f.addUser(t, "Mina", "mina@example.com", models.RoleBuyer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": buyerID.Hex(),
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductUnknownFarmer(t *testing.T) {
	f := newCatalogFixture()

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": primitive.NewObjectID().Hex(),
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProductWithImage(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":        "Tomato",
		"price":       "20",
		"quantity":    "5",
		"description": "vine ripened",
		"farmerId":    farmerID.Hex(),
	}, "tomato.jpg")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, f.images.uploads)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	product, ok := body["product"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tomato", product["name"])
	assert.Equal(t, float64(20), product["price"])
	assert.Equal(t, float64(5), product["quantity"])
	assert.Equal(t, "https://images.test/tomato.jpg", product["image"])
}

func TestAddProductDefaultQuantity(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": farmerID.Hex(),
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	product := body["product"].(map[string]any)
	assert.Equal(t, float64(1), product["quantity"])
}

func TestListByFarmerEmpty(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/products/"+farmerID.Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No products found", body["message"])
}

func TestFarmerCatalog(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "f@x.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"quantity": "5",
		"farmerId": farmerID.Hex(),
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/products/"+farmerID.Hex(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Tomato", products[0]["name"])
	assert.Equal(t, float64(20), products[0]["price"])
}

func TestListAllIncludesFarmerDetails(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": farmerID.Hex(),
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Ravi", products[0]["farmerName"])
	assert.Equal(t, "ravi@example.com", products[0]["farmerEmail"])
}

func TestListAllEmpty(t *testing.T) {
	f := newCatalogFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No products available", body["message"])
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newCatalogFixture()

	rec := f.do(httptest.NewRequest(http.MethodDelete, "/api/products/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductRemovesItAndItsImage(t *testing.T) {
	f := newCatalogFixture()
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": farmerID.Hex(),
	}, "tomato.jpg")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	productID := body["product"].(map[string]any)["id"].(string)

	rec = f.do(httptest.NewRequest(http.MethodDelete, "/api/products/"+productID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"farmers-market/tomato.jpg"}, f.images.deleted)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductSurvivesImageFailure(t *testing.T) {
	f := newCatalogFixture()
	f.images.failDelete = true
	farmerID := f.addUser(t, "Ravi", "ravi@example.com", models.RoleFarmer)

	rec := f.addProduct(t, map[string]string{
		"name":     "Tomato",
		"price":    "20",
		"farmerId": farmerID.Hex(),
	}, "tomato.jpg")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	productID := body["product"].(map[string]any)["id"].(string)

	rec = f.do(httptest.NewRequest(http.MethodDelete, "/api/products/"+productID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
