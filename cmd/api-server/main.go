package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"comichub/internal/config"
	"comichub/internal/database"
	"comichub/internal/http-api/handler"
	"comichub/internal/http-api/middleware"
	"comichub/internal/http-api/repository"
	"comichub/internal/http-api/service"
	"comichub/internal/push"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	attemptRepo := repository.NewLoginAttemptRepository(db)
	comicRepo := repository.NewComicRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Push fan-out is optional: without credentials publishes simply
	// skip notifications.
	var notifier service.Notifier
	if cfg.FirebaseCredentialsFile != "" {
		sender, err := push.NewFCMSender(context.Background(), cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("failed to initialize push sender", "error", err)
			os.Exit(1)
		}
		notifier = service.NewNotificationService(settingsRepo, userRepo, sender, logger)
		logger.Info("push notifications enabled")
	} else {
		logger.Info("push notifications disabled, no credentials configured")
	}

	// Services
	authService := service.NewAuthService(userRepo, attemptRepo, cfg)
	comicService := service.NewComicService(comicRepo, socialRepo, userRepo, notifier)
	socialService := service.NewSocialService(socialRepo, comicRepo, userRepo)
	userService := service.NewUserService(userRepo, comicRepo, socialRepo, settingsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	usersHandler := handler.NewUsersHandler(userService, socialService)
	comicHandler := handler.NewComicHandler(comicService)
	pageHandler := handler.NewPageHandler(comicService)
	socialHandler := handler.NewSocialHandler(socialService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Handler())

	registerRoutes(router, authService, authHandler, userHandler, usersHandler, comicHandler, pageHandler, socialHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting http server", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	usersHandler *handler.UsersHandler,
	comicHandler *handler.ComicHandler,
	pageHandler *handler.PageHandler,
	socialHandler *handler.SocialHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/health", healthHandler.Check)

	public := router.Group("/api")
	{
		public.POST("/user/register", authHandler.Register)
		public.POST("/user/auth", authHandler.Login)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	{
		// Own account
		api.GET("/user", userHandler.Me)
		api.PUT("/user", userHandler.UpdateName)
		api.PUT("/user/name", userHandler.UpdateName)
		api.PUT("/user/password", userHandler.ChangePassword)
		api.POST("/user/avatar", userHandler.SetAvatar)
		api.DELETE("/user/avatar", userHandler.RemoveAvatar)
		api.POST("/user/fcm_token", userHandler.SetFCMToken)
		api.PUT("/user/notification_settings", userHandler.SetNotificationSettings)
		api.GET("/user/favorites", socialHandler.Favorites)

		// Other users
		api.GET("/users/:userId", usersHandler.Profile)
		api.POST("/users/:userId/subscribe", usersHandler.ToggleSubscription)
		api.GET("/users/:userId/subscribe", usersHandler.SubscriptionState)
		api.GET("/users/:userId/subscribers", usersHandler.Subscribers)
		api.GET("/users/:userId/subscriptions", usersHandler.Subscriptions)

		// Comics
		api.GET("/comics", comicHandler.List)
		api.GET("/mycomics", comicHandler.ListMine)
		api.POST("/comics", comicHandler.Create)
		api.GET("/comics/:id", comicHandler.Get)
		api.PUT("/comics/:id", comicHandler.Update)
		api.DELETE("/comics/:id", comicHandler.Delete)
		api.GET("/comics/:id/info", comicHandler.Info)

		// Social
		api.POST("/comics/:id/like", socialHandler.ToggleLike)
		api.DELETE("/comics/:id/like", socialHandler.Unlike)
		api.GET("/comics/:id/like", socialHandler.LikeState)
		api.GET("/comics/:id/likes/count", socialHandler.LikeCount)
		api.POST("/comics/:id/favorite", socialHandler.ToggleFavorite)
		api.GET("/comics/:id/favorite", socialHandler.FavoriteState)
		api.POST("/comics/:id/comments", socialHandler.AddComment)
		api.DELETE("/comments/:commentId", socialHandler.DeleteComment)

		// Pages and images
		api.POST("/comics/pages/:id", pageHandler.AddPage)
		api.GET("/comics/pages/:id", pageHandler.GetPage)
		api.DELETE("/comics/pages/:id", pageHandler.DeletePage)
		api.POST("/comics/pages/images/:id", pageHandler.AddImage)
		api.PUT("/comics/pages/images/:id", pageHandler.UpdateImage)
		api.DELETE("/comics/pages/images/:id", pageHandler.DeleteImage)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
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
