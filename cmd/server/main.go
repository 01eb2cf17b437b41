package main

import (
	"log"
	"net/http"

	"greencart-be/internal/address"
	"greencart-be/internal/config"
	"greencart-be/internal/db"
	"greencart-be/internal/logger"
	"greencart-be/internal/middleware"
	"greencart-be/internal/order"
	"greencart-be/internal/payment"
	"greencart-be/internal/product"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	addressRepo := address.NewRepository(database)
	orderRepo := order.NewRepository(database)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderSvc := order.NewService(orderRepo, productRepo, addressRepo, gateway)
	orderHandler := order.NewHandler(orderSvc)

	srv := setupRouter(orderHandler, cfg.JWTSecret)

	log.Printf("🚀 Server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv))
}

func setupRouter(h *order.Handler, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("POST /api/order/cod", middleware.RequireUser(http.HandlerFunc(h.PlaceCOD)))
	mux.Handle("POST /api/order/razorpay/create-order", middleware.RequireUser(http.HandlerFunc(h.CreateGatewayOrder)))
	mux.Handle("POST /api/order/razorpay/verify", middleware.RequireUser(http.HandlerFunc(h.VerifyPayment)))
	mux.Handle("GET /api/order/user", middleware.RequireUser(http.HandlerFunc(h.UserOrders)))
	mux.Handle("GET /api/order/seller", middleware.RequireSeller(http.HandlerFunc(h.AllOrders)))

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(jwtSecret)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}
