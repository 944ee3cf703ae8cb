// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"farmmarket/controllers"
	"farmmarket/middleware"
	"farmmarket/routes"
	"farmmarket/storage"
	"farmmarket/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	tokenIssuer, err := utils.NewTokenIssuer(os.Getenv("JWT_SECRET"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure token signing")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		logrus.Fatal("MONGO_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.Connect(ctx, uri)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Error("Error disconnecting from MongoDB")
		}
	}()
	logrus.Info("Connected to MongoDB")

	db := client.Database("farmmarket")
	if err := storage.EnsureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to create indexes")
	}

	// External clients are process-scoped singletons, constructed once and
	// injected into the controllers.
	emailService := utils.NewEmailService()
	gateway := utils.NewRazorpayClient()
	var images utils.ImageStore
	if store, err := utils.NewCloudinaryStore(); err != nil {
		logrus.WithError(err).Warn("Image hosting disabled")
	} else {
		images = store
	}

	userStore := storage.NewMongoUserStore(db)
	productStore := storage.NewMongoProductStore(db)
	cartStore := storage.NewMongoCartStore(db)

	userController := controllers.NewUserController(userStore, tokenIssuer, emailService)
	productController := controllers.NewProductController(productStore, userStore, images)
	cartController := controllers.NewCartController(cartStore)
	paymentController := controllers.NewPaymentController(gateway)

	middleware.RegisterMetrics()

	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, paymentController)
	router.Use(middleware.Metrics)
	router.Use(middleware.RateLimit)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      cors(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logrus.Infof("Server running on port %s", port)
	logrus.Fatal(server.ListenAndServe())
}
