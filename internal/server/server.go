package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AbhiAndure02/pocketwala/internal/config"
	"github.com/AbhiAndure02/pocketwala/internal/database"
	custommiddleware "github.com/AbhiAndure02/pocketwala/internal/middleware"
	"github.com/AbhiAndure02/pocketwala/internal/repository"
	"github.com/AbhiAndure02/pocketwala/internal/service"
	"github.com/AbhiAndure02/pocketwala/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		custommiddleware.RespondWithJSON(w, http.StatusOK, db.Health(ctx))
	})

	// Redis client for rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB())
	productRepo := repository.NewProductRepository(db.DB())
	typeRepo := repository.NewProductTypeRepository(db.DB())
	colorRepo := repository.NewProductColorRepository(db.DB())
	cartRepo := repository.NewCartRepository(db.DB())
	orderRepo := repository.NewOrderRepository(db.DB())
	bulkOrderRepo := repository.NewBulkOrderRepository(db.DB())

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryDays)
	catalogService := service.NewCatalogService(productRepo, typeRepo, colorRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo)
	bulkOrderService := service.NewBulkOrderService(bulkOrderRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)
	taxonomyHandler := transport.NewTaxonomyHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	bulkOrderHandler := transport.NewBulkOrderHandler(bulkOrderService, logger)

	// Route middleware
	auth := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	admin := custommiddleware.RequireAdmin(logger)
	loginLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:auth",
	}, logger)

	// Register routes
	userHandler.RegisterRoutes(router, auth, admin, loginLimiter)
	productHandler.RegisterRoutes(router, auth, admin)
	taxonomyHandler.RegisterRoutes(router, auth, admin)
	cartHandler.RegisterRoutes(router, auth)
	orderHandler.RegisterRoutes(router, auth, admin)
	bulkOrderHandler.RegisterRoutes(router, auth, admin)

	// Serve the built storefront bundle when configured
	if cfg.Server.StaticDir != "" {
		registerStaticRoutes(router, cfg.Server.StaticDir)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

// registerStaticRoutes serves the single-page storefront: files that exist
// are served as-is, everything else falls back to index.html so client-side
// routing works on deep links.
func registerStaticRoutes(router chi.Router, staticDir string) {
	fileServer := http.FileServer(http.Dir(staticDir))
	router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
