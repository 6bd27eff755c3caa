package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/usrmgt/usrmgt/internal/config"
	"github.com/usrmgt/usrmgt/internal/health"
	"github.com/usrmgt/usrmgt/internal/middleware"
	"github.com/usrmgt/usrmgt/internal/users"
)

// AppState holds all application services
type AppState struct {
	Logger      *zap.Logger
	Config      *config.Config
	Health      *health.Manager
	UserStore   users.UserStore
	UserService users.UserService

	closers []io.Closer
}

func main() {
	config.Load()

	logger := initLogger()
	defer logger.Sync()

	if err := config.Get().Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	as, err := newAppState(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	if err := as.Health.StartupHealthCheck(ctx); err != nil {
		logger.Fatal("Startup health check failed", zap.Error(err))
	}

	router := setupRouter(as)

	addr := config.Http().Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting usrmgt server",
		zap.String("address", addr),
		zap.String("store", config.Store().Type))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(ctx context.Context, logger *zap.Logger) (*AppState, error) {
	as := &AppState{
		Logger: logger,
		Config: config.Get(),
		Health: health.NewManager(logger),
	}

	storeConfig := config.Store()
	switch storeConfig.Type {
	case config.StoreTypePostgres:
		pgConfig := config.Postgres()
		logger.Info("Database configuration",
			zap.String("host", pgConfig.Host),
			zap.Int("port", pgConfig.Port),
			zap.String("database", pgConfig.Database),
			zap.String("user", pgConfig.User))

		db, err := users.OpenPostgres(ctx, pgConfig.DSN(), pgConfig.MaxOpenConnections)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		if storeConfig.Migrate {
			if err := users.CreateTables(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate postgres store: %w", err)
			}
		}

		store := users.NewBunStore(db, "postgres")
		as.UserStore = store
		as.Health.AddChecker(store)
		as.closers = append(as.closers, store)

	case config.StoreTypeSQLite:
		sqliteConfig := config.SQLite()
		logger.Info("SQLite configuration", zap.String("path", sqliteConfig.Path))

		db, err := users.OpenSQLite(ctx, sqliteConfig.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if storeConfig.Migrate {
			if err := users.CreateTables(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
			}
		}

		store := users.NewBunStore(db, "sqlite")
		as.UserStore = store
		as.Health.AddChecker(store)
		as.closers = append(as.closers, store)

	case config.StoreTypeMemory:
		logger.Warn("Using in-memory user store, records are lost on restart")
		store := users.NewMemoryStore()
		as.UserStore = store
		as.Health.AddChecker(store)

	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeConfig.Type)
	}

	as.UserService = users.NewService(as.UserStore, users.UUIDGenerator{})

	return as, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(cors.Default())
	router.Use(middleware.RequestLogger(as.Logger))
	router.Use(gin.Recovery())

	router.GET("/health", health.Handler(as.Health))

	users.NewHandlers(as.UserService, as.Logger).RegisterRoutes(router)

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		for _, closer := range as.closers {
			if err := closer.Close(); err != nil {
				logger.Error("Error closing user store", zap.Error(err))
			}
		}

		done <- struct{}{}
	}()

	return done
}
