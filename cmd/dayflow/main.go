package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayflow/internal/config"
	"dayflow/internal/server"
	"dayflow/internal/storage"
	"dayflow/internal/storage/memory"
	"dayflow/internal/storage/sqlite"
	"dayflow/internal/util"
)

func main() {
	configFlag := flag.String("config", util.EnvOrDefault("DAYFLOW_CONFIG", ""), "Path to YAML config file")
	addrFlag := flag.String("addr", util.EnvOrDefault("DAYFLOW_ADDR", ""), "HTTP listen address (overrides config)")
	dbFlag := flag.String("db", util.EnvOrDefault("DAYFLOW_DB_PATH", ""), "Path to sqlite database file; empty runs in-memory (overrides config)")
	staticFlag := flag.String("static", util.EnvOrDefault("DAYFLOW_STATIC_DIR", ""), "Directory with built frontend (overrides config)")
	noSeedFlag := flag.Bool("no-seed", false, "Start the in-memory store with empty collections")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Error("unable to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *staticFlag != "" {
		cfg.StaticDir = *staticFlag
	}
	if *noSeedFlag {
		cfg.Seed = false
	}

	var store storage.Storage
	if cfg.DBPath != "" {
		st, err := sqlite.Open(cfg.DBPath, logger)
		if err != nil {
			logger.Error("unable to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer st.Close()
		store = st
		logger.Info("using sqlite store", slog.String("path", cfg.DBPath))
	} else {
		if cfg.Seed {
			store = memory.NewSeeded()
		} else {
			store = memory.New()
		}
		logger.Info("using in-memory store; data will not survive a restart")
	}

	srv := server.New(store, logger, cfg.StaticDir)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
