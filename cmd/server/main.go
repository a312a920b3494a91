package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/config"
	"github.com/stockroom/stockroom-service/internal/web"
	"github.com/stockroom/stockroom-service/pkg/broker"
	"github.com/stockroom/stockroom-service/pkg/cache"
	"github.com/stockroom/stockroom-service/pkg/logger"
	"github.com/stockroom/stockroom-service/pkg/postgres"

	itemH "github.com/stockroom/stockroom-service/internal/item/handler"
	itemRepoPkg "github.com/stockroom/stockroom-service/internal/item/repository"
	itemUCPkg "github.com/stockroom/stockroom-service/internal/item/usecase"

	roomH "github.com/stockroom/stockroom-service/internal/room/handler"
	roomRepoPkg "github.com/stockroom/stockroom-service/internal/room/repository"
	roomUCPkg "github.com/stockroom/stockroom-service/internal/room/usecase"

	shelfH "github.com/stockroom/stockroom-service/internal/shelf/handler"
	shelfRepoPkg "github.com/stockroom/stockroom-service/internal/shelf/repository"
	shelfUCPkg "github.com/stockroom/stockroom-service/internal/shelf/usecase"

	stockpkg "github.com/stockroom/stockroom-service/internal/stock"
	stockH "github.com/stockroom/stockroom-service/internal/stock/handler"
	stockRepoPkg "github.com/stockroom/stockroom-service/internal/stock/repository"
	stockUCPkg "github.com/stockroom/stockroom-service/internal/stock/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	var listingCache stockpkg.ListingCache
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (listing cache disabled)", zap.Error(err))
	} else {
		defer redisClient.Close()
		listingCache = redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Kafka Producer
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Repositories
	roomRepo := roomRepoPkg.NewPGRepository(db)
	shelfRepo := shelfRepoPkg.NewPGRepository(db)
	itemRepo := itemRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	roomUC := roomUCPkg.NewRoomUseCase(roomRepo, appLogger)
	shelfUC := shelfUCPkg.NewShelfUseCase(shelfRepo, appLogger)
	itemUC := itemUCPkg.NewItemUseCase(itemRepo, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(
		stockRepo,
		listingCache,
		producer,
		time.Duration(cfg.Redis.ListingTTL)*time.Second,
		appLogger,
	)

	// 8. Initialize Handlers and Routes
	mux := http.NewServeMux()
	roomH.NewRoomHandler(roomUC, shelfUC, appLogger).Register(mux)
	shelfH.NewShelfHandler(shelfUC, appLogger).Register(mux)
	itemH.NewItemHandler(itemUC, appLogger).Register(mux)
	stockH.NewStockHandler(stockUC, appLogger).Register(mux)
	mux.HandleFunc("GET /health_check", func(w http.ResponseWriter, r *http.Request) {
		web.WriteData(w, http.StatusOK, "ok")
	})

	handler := web.RequestLogger(appLogger, web.ActorContext(mux))

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
