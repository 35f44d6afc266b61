package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"secretsanta/config"
	_ "secretsanta/docs"
	"secretsanta/internal/adapters/keygen"
	"secretsanta/internal/assign"
	delivery "secretsanta/internal/delivery/http"
	"secretsanta/internal/delivery/http/controllers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/repository/postgres"
	"secretsanta/internal/services"
)

// @title Secret Santa API
// @version 1.0
// @description Gift-exchange room service: derangement-based assignments behind unguessable secret keys.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	engine, err := assign.NewCryptoSeeded()
	if err != nil {
		logger.Error("failed to seed assignment engine", "err", err)
		os.Exit(1)
	}

	roomRepo := postgres.NewRoomRepository(db)
	roomService := services.NewRoomService(roomRepo, keygen.New(), engine)
	roomController := controllers.NewRoomController(logger, roomService, cfg.PublicBaseURL)

	mux := delivery.NewRouter(roomController)
	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.Logging(logger,
			middleware.Metrics(mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
