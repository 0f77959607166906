package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"cinemavault/database"
	"cinemavault/internal/cache"
	"cinemavault/internal/config"
	"cinemavault/internal/http-api/handler"
	"cinemavault/internal/http-api/middleware"
	"cinemavault/internal/http-api/repository"
	"cinemavault/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// redis is optional: a nil cache degrades to direct DB reads
	movieCache, err := cache.NewMovieCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, movie list caching disabled", "error", err)
		movieCache = nil
	}

	// repositories
	movieRepo := repository.NewMovieRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	savedRepo := repository.NewSavedMovieRepository(db)
	userRepo := repository.NewUserRepository(db)
	permRepo := repository.NewUserPermissionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// services
	imageStore := service.NewLocalImageStore(cfg.WebRoot, logger)
	authSvc := service.NewAuthService(userRepo, cfg)
	movieSvc := service.NewMovieService(movieRepo, genreRepo, savedRepo, imageStore, movieCache, logger)
	userSvc := service.NewUserService(userRepo, savedRepo, permRepo, imageStore)
	permSvc := service.NewUserPermissionService(permRepo)
	savedSvc := service.NewSavedMovieService(savedRepo, movieRepo)
	ratingSvc := service.NewRatingService(ratingRepo, movieRepo, movieCache)

	// middleware
	requireAuth := middleware.Authenticate(authSvc)
	optionalAuth := middleware.OptionalAuthenticate(authSvc)
	requireAdmin := middleware.RequireAdmin()
	authRate := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst).Middleware()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// uploaded images are served straight from the web root
	r.Static("/uploads", filepath.Join(cfg.WebRoot, "uploads"))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	handler.NewAuthHandler(authSvc).RegisterRoutes(api.Group("/Auth"), authRate)
	handler.NewUsersHandler(userSvc).RegisterRoutes(api.Group("/Users"), requireAuth)
	handler.NewUserPermissionHandler(permSvc).RegisterRoutes(api.Group("/UserPermission"), requireAuth, requireAdmin)
	handler.NewMovieHandler(movieSvc, ratingSvc).RegisterRoutes(api.Group("/Movie"), optionalAuth, requireAuth, requireAdmin)
	handler.NewGenreHandler(genreRepo).RegisterRoutes(api.Group("/Genre"))
	handler.NewSavedMovieHandler(savedSvc).RegisterRoutes(api.Group("/SavedMovie"), requireAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
