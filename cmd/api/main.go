// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/analytics"
	"github.com/your-org/fashion-store/internal/domain/audit"
	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/feature"
	"github.com/your-org/fashion-store/internal/domain/order"
	"github.com/your-org/fashion-store/internal/domain/payment"
	"github.com/your-org/fashion-store/internal/domain/product"
	"github.com/your-org/fashion-store/internal/domain/upload"
	"github.com/your-org/fashion-store/internal/domain/user"
	"github.com/your-org/fashion-store/internal/domain/wishlist"
	"github.com/your-org/fashion-store/internal/infrastructure/database/mongo"
	"github.com/your-org/fashion-store/internal/infrastructure/database/postgres"
	"github.com/your-org/fashion-store/internal/infrastructure/database/redis"
	"github.com/your-org/fashion-store/internal/infrastructure/storage"
	"github.com/your-org/fashion-store/internal/interfaces/http"
	"github.com/your-org/fashion-store/internal/interfaces/http/handlers"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
	"github.com/your-org/fashion-store/internal/interfaces/http/routes"
	"github.com/your-org/fashion-store/internal/pkg/auth"
	"github.com/your-org/fashion-store/internal/pkg/email"
	"github.com/your-org/fashion-store/internal/pkg/logger"
	"github.com/your-org/fashion-store/internal/pkg/pdf"
)

const dashboardCacheTTL = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.Setup(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}
	if err := migration.SeedInitialData(cfg); err != nil {
		log.WithError(err).Warn("data seeding failed")
	}

	checks := map[string]http.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}

	// The activity log is optional; without Mongo events are dropped
	var recorder audit.Recorder = audit.NopRecorder{}
	if cfg.Mongo.URI != "" {
		mongoClient, err := mongo.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			log.WithError(err).Warn("activity log disabled")
		} else {
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mongoClient.Close(closeCtx)
			}()

			mongoRecorder := audit.NewMongoRecorder(mongoClient.Collection(cfg.Mongo.ActivityCollection))
			if err := mongoRecorder.EnsureIndexes(ctx); err != nil {
				log.WithError(err).Warn("failed to create activity indexes")
			}
			recorder = mongoRecorder
			checks["mongo"] = mongoClient
		}
	}

	store, err := storage.New(ctx, cfg.External.Storage)
	if err != nil {
		log.Fatalf("Failed to initialise storage: %v", err)
	}

	mailer, err := email.NewEmailService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise email service: %v", err)
	}

	documents, err := pdf.NewService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise PDF service: %v", err)
	}

	gormDB := db.GetDB()
	rdb := redisClient.GetClient()

	jwtManager := auth.NewJWTManager(cfg)
	denylist := redis.NewDenylist(rdb)

	userService := user.NewService(user.NewGormRepository(gormDB), auth.NewPasswordManager(cfg), jwtManager, denylist, mailer)
	addressService := user.NewAddressService(user.NewGormAddressRepository(gormDB), cfg.Catalog.MaxAddresses)

	productRepo := product.NewGormRepository(gormDB)
	productService := product.NewService(productRepo, recorder)
	cartService := cart.NewService(cart.NewGormRepository(gormDB), productService)

	orderRepo := order.NewGormRepository(gormDB)
	orderService := order.NewService(order.Deps{
		Repo:      orderRepo,
		Carts:     cartService,
		Products:  productService,
		Gateway:   payment.NewRazorpayGateway(cfg),
		Notifier:  order.NewEmailNotifier(mailer),
		Customers: userService,
		Recorder:  recorder,
	})
	reviewService := product.NewReviewService(productRepo.Reviews(), productRepo, orderRepo)
	wishlistService := wishlist.NewService(wishlist.NewGormRepository(gormDB), productService, cartService)

	uploadService := upload.NewService(upload.NewGormRepository(gormDB), store, cfg.Upload)
	featureService := feature.NewService(feature.NewGormRepository(gormDB), uploadService)
	analyticsService := analytics.NewService(
		analytics.NewGormSource(gormDB),
		redis.NewCache(rdb),
		dashboardCacheTTL,
		cfg.Catalog.LowStockThreshold,
	)

	limiter := middleware.NewRateLimiter(
		redis.NewWindowCounter(rdb, "rate_limit:"),
		cfg.Security.RateLimitPerMinute,
		cfg.Security.RateLimitBurst,
	)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	opts := http.Options{
		Handlers: &routes.Handlers{
			Auth:      handlers.NewAuthHandler(userService, cfg),
			Product:   handlers.NewProductHandler(productService),
			Review:    handlers.NewReviewHandler(reviewService),
			Cart:      handlers.NewCartHandler(cartService),
			Wishlist:  handlers.NewWishlistHandler(wishlistService),
			Address:   handlers.NewUserAddressHandler(addressService),
			Order:     handlers.NewOrderHandler(orderService),
			Payment:   handlers.NewPaymentHandler(orderService),
			Invoice:   handlers.NewInvoiceHandler(orderService, userService, documents),
			Upload:    handlers.NewUploadHandler(uploadService),
			Feature:   handlers.NewFeatureHandler(featureService),
			Analytics: handlers.NewAnalyticsHandler(analyticsService),
		},
		Authenticator: middleware.NewAuthenticator(jwtManager, denylist, cfg.JWT.CookieName),
		RateLimiter:   limiter,
		Logger:        log,
		Checks:        checks,
	}
	if local, ok := store.(*storage.LocalStore); ok && strings.HasPrefix(cfg.External.Storage.PublicPath, "/") {
		opts.StaticDir = local.Root()
		opts.StaticPath = cfg.External.Storage.PublicPath
	}

	server, err := http.NewServer(cfg, opts)
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
		}
	case <-ctx.Done():
		log.Info("Shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
