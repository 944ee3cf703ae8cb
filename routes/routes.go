// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farmmarket/controllers"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, paymentController *controllers.PaymentController) {
	// Identity
	router.HandleFunc("/api/register", userController.Register).Methods("POST")
	router.HandleFunc("/api/login", userController.Login).Methods("POST")

	// Catalog
	router.HandleFunc("/api/products/add", productController.AddProduct).Methods("POST")
	router.HandleFunc("/api/products", productController.ListAll).Methods("GET")
	router.HandleFunc("/api/products/{farmerId}", productController.ListByFarmer).Methods("GET")
	router.HandleFunc("/api/products/{id}", productController.DeleteProduct).Methods("DELETE")

	// Cart
	router.HandleFunc("/api/add-to-cart", cartController.AddToCart).Methods("POST")
	router.HandleFunc("/api/remove-from-cart", cartController.RemoveFromCart).Methods("POST")
	router.HandleFunc("/api/cart/{userId}", cartController.GetCart).Methods("GET")

	// Payment
	router.HandleFunc("/api/payment/create-order", paymentController.CreateOrder).Methods("POST")

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
