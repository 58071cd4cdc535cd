package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/erasmus-advisor-api/api/swagger"
	"github.com/noah-isme/erasmus-advisor-api/internal/handler"
	"github.com/noah-isme/erasmus-advisor-api/internal/llm"
	"github.com/noah-isme/erasmus-advisor-api/internal/repository"
	"github.com/noah-isme/erasmus-advisor-api/internal/section"
	"github.com/noah-isme/erasmus-advisor-api/internal/service"
	"github.com/noah-isme/erasmus-advisor-api/internal/session"
	"github.com/noah-isme/erasmus-advisor-api/pkg/cache"
	"github.com/noah-isme/erasmus-advisor-api/pkg/config"
	"github.com/noah-isme/erasmus-advisor-api/pkg/database"
	"github.com/noah-isme/erasmus-advisor-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/erasmus-advisor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/erasmus-advisor-api/pkg/middleware/requestid"
	"github.com/noah-isme/erasmus-advisor-api/pkg/pdftext"
	"github.com/noah-isme/erasmus-advisor-api/pkg/storage"
)

// @title Erasmus Advisor API
// @version 0.1.0
// @description Guided Erasmus+ mobility advising over university PDF documents
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Advisor.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Advisor.CacheTTL, logr, true)
		}
	}

	model, err := llm.NewGeminiClient(context.Background(), cfg.Gemini)
	if err != nil {
		logr.Sugar().Fatalw("failed to init model client", "error", err)
	}

	sessions := session.NewStore(cfg.Sessions, logr)
	sessions.Start()
	defer sessions.Stop()

	uniRepo := repository.NewUniversityRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	authSvc := service.NewAuthService(uniRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	universitySvc := service.NewUniversityService(docRepo, store, cacheSvc, nil, logr, service.UniversityConfig{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
	})
	advisingSvc := service.NewAdvisingService(
		docRepo,
		uniRepo,
		pdftext.NewExtractor(),
		model,
		sessions,
		section.NewSegmenter(cfg.Advisor.HeaderKeywords),
		section.NewCatalog(cfg.Advisor.MinDepartmentLen),
		store,
		signer,
		cacheSvc,
		metricsSvc,
		nil,
		logr,
		service.AdvisingConfig{
			MaxPromptChars: cfg.Gemini.MaxPromptChars,
			CacheTTL:       cfg.Advisor.CacheTTL,
			FilesBasePath:  cfg.APIPrefix + "/advisor/files/exams",
		},
	)
	exportSvc := service.NewExportService(nil, nil, nil, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Routers{
		Advisor:    handler.NewAdvisorHandler(advisingSvc, exportSvc),
		University: handler.NewUniversityHandler(authSvc, universitySvc),
	}, authSvc, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Warn("shutdown incomplete", zap.Error(err))
	}
}
