package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/apperr"
	"farmmarket/models"
	"farmmarket/storage"
	"farmmarket/utils"
)

const maxUploadSize = 10 << 20

// ProductController handles the product catalog.
type ProductController struct {
	Products storage.ProductStore
	Users    storage.UserStore
	Images   utils.ImageStore // nil when image hosting is not configured
}

// NewProductController creates a new ProductController.
func NewProductController(products storage.ProductStore, users storage.UserStore, images utils.ImageStore) *ProductController {
	return &ProductController{
		Products: products,
		Users:    users,
		Images:   images,
	}
}

// AddProduct handles a multipart product creation with an optional image.
func (pc *ProductController) AddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	farmerIDStr := r.FormValue("farmerId")
	if name == "" || priceStr == "" || farmerIDStr == "" {
		writeError(w, http.StatusBadRequest, "Name, price, and farmerId are required")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		writeError(w, http.StatusBadRequest, "Price must be a positive number")
		return
	}

	quantity := 1
	if quantityStr := r.FormValue("quantity"); quantityStr != "" {
		quantity, err = strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			writeError(w, http.StatusBadRequest, "Quantity must be a non-negative number")
			return
		}
	}

	farmerID, err := primitive.ObjectIDFromHex(farmerIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid farmer ID or user is not a farmer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	farmer, err := pc.Users.FindByID(ctx, farmerID)
	if err != nil {
		if kind, ok := apperr.KindOf(err); ok && kind == apperr.KindNotFound {
			writeError(w, http.StatusBadRequest, "Invalid farmer ID or user is not a farmer")
			return
		}
		writeAppError(w, err)
		return
	}
	if farmer.Type != models.RoleFarmer {
		writeError(w, http.StatusBadRequest, "Invalid farmer ID or user is not a farmer")
		return
	}

	product := &models.Product{
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
		Quantity:    quantity,
		Farmer:      farmerID,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if pc.Images == nil {
			logrus.Warn("image hosting not configured, storing product without image")
		} else {
			url, publicID, err := pc.Images.Upload(ctx, file, header.Filename)
			if err != nil {
				writeAppError(w, apperr.Dependency("Error uploading image", err))
				return
			}
			product.Image = url
			product.ImagePublicID = publicID
		}
	}

	product, err = pc.Products.Insert(ctx, product)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product added successfully",
		"product": product,
	})
}

// ListByFarmer retrieves all products owned by a farmer.
func (pc *ProductController) ListByFarmer(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	farmerID, err := primitive.ObjectIDFromHex(params["farmerId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid farmer ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := pc.Products.FindByFarmer(ctx, farmerID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if len(products) == 0 {
		writeError(w, http.StatusNotFound, "No products found")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListAll retrieves all products with their owning farmer's name and email.
func (pc *ProductController) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.Products.FindAllWithFarmer(ctx)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if len(products) == 0 {
		writeError(w, http.StatusNotFound, "No products available")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// DeleteProduct removes a product and, best effort, its stored image.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	// Image deletion failures are logged, never propagated.
	if product.ImagePublicID != "" && pc.Images != nil {
		if err := pc.Images.Delete(ctx, product.ImagePublicID); err != nil {
			logrus.WithError(err).WithField("public_id", product.ImagePublicID).Error("failed to delete product image")
		}
	}

	if err := pc.Products.Delete(ctx, id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product and image deleted successfully"})
}
