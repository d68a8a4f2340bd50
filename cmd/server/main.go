package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"casework-backend/internal/blobstore"
	"casework-backend/internal/config"
	"casework-backend/internal/database"
	"casework-backend/internal/handlers"
	"casework-backend/internal/middleware"
	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, st.DB()); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("migrations completed")

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize blob store")
	}

	var resolver middleware.CallerResolver
	if cfg.AuthJWTSecret != "" {
		resolver = middleware.NewTokenResolver(st, cfg.AuthJWTSecret)
	} else {
		resolver = middleware.NewHeaderResolver(st)
	}

	authHandler := handlers.NewAuthHandler(st, log)
	profileHandler := handlers.NewProfileHandler(st, blobs, log)
	casesHandler := handlers.NewCasesHandler(st, blobs, log)
	processedHandler := handlers.NewProcessedCasesHandler(st, blobs, log)
	projectsHandler := handlers.NewProjectsHandler(st, log)
	reviewsHandler := handlers.NewReviewsHandler(st, log)

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	api.GET("/profile/:id", profileHandler.Get)
	api.PUT("/profile/:id", middleware.Auth(resolver), profileHandler.Update)

	api.POST("/cases", middleware.Auth(resolver), casesHandler.Create)
	api.GET("/cases", casesHandler.List)
	api.GET("/cases/:id", casesHandler.Get)
	api.PUT("/cases/:id/accept", casesHandler.Accept)

	api.GET("/processed-cases", processedHandler.List)
	api.GET("/processed-cases/:id", processedHandler.Get)
	api.POST("/processed-cases/:id/upload-files", middleware.Auth(resolver), processedHandler.UploadFiles)
	api.PUT("/processed-cases/:id/complete", middleware.Auth(resolver), processedHandler.Complete)

	api.GET("/projects", projectsHandler.List)
	api.GET("/projects/:id", projectsHandler.Get)

	api.GET("/reviews", reviewsHandler.List)
	api.POST("/reviews", middleware.Auth(resolver), reviewsHandler.Create)

	router.Static("/uploads", cfg.UploadsDir)

	// Anything else is the client-rendered frontend: serve the asset when it
	// exists, otherwise fall back to the entry document for client routing.
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}
		asset := filepath.Join(cfg.FrontendDir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(asset); err == nil && !info.IsDir() {
			c.File(asset)
			return
		}
		c.File(filepath.Join(cfg.FrontendDir, "index.html"))
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	if cfg.StorageBackend == config.StorageBackendS3 {
		return blobstore.NewS3(ctx, blobstore.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return blobstore.NewLocal(cfg.UploadsDir)
}
