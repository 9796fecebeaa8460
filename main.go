package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Hemali15f/BookNest/cache"
	"github.com/Hemali15f/BookNest/controllers"
	"github.com/Hemali15f/BookNest/database"
	"github.com/Hemali15f/BookNest/logger"
	"github.com/Hemali15f/BookNest/middleware"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
	"github.com/Hemali15f/BookNest/routes"
	"github.com/Hemali15f/BookNest/services"
)

func main() {
	// No .env file is fine; system environment variables will be used.
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	if err := models.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Admin seeding failed", zap.Error(err))
	}

	// The catalog cache is optional; without REDIS_URL every read goes to
	// the database.
	var bookCache *cache.BookCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		bookCache = cache.NewBookCache(redis.NewClient(opts), log)
	}

	userRepo := repository.NewGormUserRepository(db)
	bookRepo := repository.NewGormBookRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	bookService := services.NewBookService(bookRepo, userRepo, orderRepo, bookCache)
	cartService := services.NewCartService(cartRepo, bookRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, bookRepo, log, cfg.TrustClientPricing)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middlewareCORS())

	routes.Register(router,
		tokenService,
		controllers.NewAuthController(authService),
		controllers.NewBookController(bookService),
		controllers.NewCartController(cartService),
		controllers.NewOrderController(orderService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("Server is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", zap.Error(err))
	}
	log.Info("Server shutdown complete")
}

func middlewareCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}
