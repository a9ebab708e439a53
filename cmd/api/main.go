package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rescuebite/rescuebite-backend/internal/modules/auth"
	"github.com/rescuebite/rescuebite-backend/internal/modules/cart"
	"github.com/rescuebite/rescuebite-backend/internal/modules/catalog"
	"github.com/rescuebite/rescuebite-backend/internal/modules/inventory"
	"github.com/rescuebite/rescuebite-backend/internal/modules/order"
	"github.com/rescuebite/rescuebite-backend/internal/modules/payment"
	"github.com/rescuebite/rescuebite-backend/internal/modules/pickup"
	"github.com/rescuebite/rescuebite-backend/internal/modules/user"
	"github.com/rescuebite/rescuebite-backend/internal/util"
)

func main() {
	_ = godotenv.Load()

	if err := util.InitLogger(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Handle("/metrics", promhttp.Handler())

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & Stock ─────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Cart & Checkout ─────────────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogRepo)
	cart.NewHandler(cartService).RegisterRoutes(router)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, catalogRepo, userRepo, cartRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Collaborators ───────────────────────────────────────
	gateway := payment.NewHostedCheckoutGateway(
		os.Getenv("PAYMENT_API_KEY"),
		os.Getenv("PAYMENT_BASE_URL"),
		os.Getenv("PAYMENT_ENV"),
	)
	paymentService := payment.NewService(orderService, gateway)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	codec := pickup.NewSandboxCodec(os.Getenv("QR_IMAGE_DIR"))
	pickup.NewHandler(orderService, codec).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("rescuebite API server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
