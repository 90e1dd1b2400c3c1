package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-hrm/internal/bootstrap"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&store.StoreDocument{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("sql handle unavailable", zap.Error(err))
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			logger.Warn("redis unavailable, serving without cache", zap.Error(err))
			rdb = nil
		}
	}

	repo := store.NewRepository(gormDB)
	service := store.NewService(sqlDB, repo, rdb)
	handler := store.NewHandler(service)

	r := gin.Default()
	store.RegisterRoutes(r, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	bootstrap.StartHTTPServer(r, bootstrap.ServerConfig{
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
}
