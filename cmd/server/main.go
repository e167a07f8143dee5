package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Skufu/GoCardio/internal/config"
	"github.com/Skufu/GoCardio/internal/consultation"
	"github.com/Skufu/GoCardio/internal/logger"
	"github.com/Skufu/GoCardio/internal/model"
	"github.com/Skufu/GoCardio/internal/prediction"
	"github.com/Skufu/GoCardio/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "gocardio")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	// Nothing is served until the model is in memory.
	engine, err := loadEngine(cfg.ModelPath)
	if err != nil {
		log.Fatal("model load failed", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	log.Info("model loaded", zap.String("path", cfg.ModelPath))

	ctx := context.Background()
	var db server.HealthChecker
	var mirrors []consultation.Recorder
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		defer pool.Close()

		pg := consultation.NewPostgresRecorder(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("database schema failed", zap.Error(err))
		}
		db = pool
		mirrors = append(mirrors, pg)
	}

	consultations := consultation.NewService(log, consultation.NewCSVRecorder(cfg.ConsultationLog), mirrors...)
	app := server.NewApp(engine, consultations, log, cfg.PredictOnLoad)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(app, db),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.Port), zap.String("consultation_log", cfg.ConsultationLog))
	waitForShutdown(srv, log)
}

func loadEngine(path string) (*prediction.Engine, error) {
	tree, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	return prediction.NewEngine(tree)
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(srv *http.Server, log *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
