package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/chapashop/api/internal/auth"
	"github.com/chapashop/api/internal/config"
	"github.com/chapashop/api/internal/database"
	"github.com/chapashop/api/internal/handler"
	middlewarepkg "github.com/chapashop/api/internal/middleware"
	"github.com/chapashop/api/internal/repository"
	"github.com/chapashop/api/internal/router"
	"github.com/chapashop/api/internal/service"
	"github.com/chapashop/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	businessesRepo := repository.NewPGXBusinessesRepository(pool)
	reviewsRepo := repository.NewPGXReviewsRepository(pool)

	var photoStore storage.PhotoStore
	if cfg.DriveCredentialsFile != "" {
		store, err := storage.NewDriveStore(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
		if err != nil {
			log.Fatalf("failed to init photo storage: %v", err)
		}
		photoStore = store
	} else {
		log.Printf("photo storage disabled: DRIVE_CREDENTIALS_FILE not set")
	}

	contacts := service.NewContactValidator(cfg.PhoneRegion)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	businessService := service.NewBusinessService(businessesRepo, reviewsRepo, photoStore, contacts, cfg.TopRatedLimit)
	reviewService := service.NewReviewService(reviewsRepo, businessesRepo)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserAdminHandler(userService),
		Businesses:  handler.NewBusinessesHandler(businessService),
		Reviews:     handler.NewReviewsHandler(reviewService),
		AdminUpload: handler.NewAdminUploadHandler(businessService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
