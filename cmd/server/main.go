package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/mzp/fairshare/internal/auth"
	"github.com/mzp/fairshare/internal/config"
	"github.com/mzp/fairshare/internal/server"
	"github.com/mzp/fairshare/internal/service"
	"github.com/mzp/fairshare/internal/storage/sqlite"
	"github.com/mzp/fairshare/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	groups := service.NewGroupService(store, rng)
	fairness := service.NewFairnessService(store)
	notifications := service.NewNotificationService(store)
	chores := service.NewChoreService(store, fairness, notifications)
	expenses := service.NewExpenseService(store, notifications)

	srv := server.New(authenticator, jwtManager, groups, fairness, chores, expenses, notifications)

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
