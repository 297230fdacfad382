package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talkbase/forum-backend/internal/config"
	"github.com/talkbase/forum-backend/internal/handler"
	"github.com/talkbase/forum-backend/internal/middleware"
	"github.com/talkbase/forum-backend/internal/migration"
	"github.com/talkbase/forum-backend/internal/repository"
	"github.com/talkbase/forum-backend/internal/routes"
	"github.com/talkbase/forum-backend/internal/service"
	pkgcache "github.com/talkbase/forum-backend/pkg/cache"
	pkgjwt "github.com/talkbase/forum-backend/pkg/jwt"
	pkglogger "github.com/talkbase/forum-backend/pkg/logger"
	pkgredis "github.com/talkbase/forum-backend/pkg/redis"
)

// getConfigPath returns the config file path based on APP_ENV
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	log := pkglogger.GetLogger()
	log.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := initDB(cfg, env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	var cacheSvc pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		} else {
			cacheSvc = pkgcache.NewService(redisClient)
			log.Info().Msg("connected to redis")
		}
	}

	jwtManager := pkgjwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMin)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour,
	)

	// Repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	threadService := service.NewThreadService(txManager, threadRepo, postRepo, revisionRepo, userRepo, cacheSvc)
	postService := service.NewPostService(txManager, postRepo, threadRepo, revisionRepo, userRepo)
	moderationService := service.NewModerationService(txManager, userRepo, threadRepo, postRepo)
	searchService := service.NewSearchService(threadRepo, postRepo, userRepo)

	// HTTP
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	routes.Setup(router, &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Thread:   handler.NewThreadHandler(threadService),
		Post:     handler.NewPostHandler(postService),
		Category: handler.NewCategoryHandler(categoryRepo),
		Search:   handler.NewSearchHandler(searchService),
		User:     handler.NewUserHandler(userRepo),
		Admin:    handler.NewAdminHandler(moderationService),
	}, jwtManager)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.App.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func initDB(cfg *config.Config, env string) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if env == "local" || env == "development" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}
