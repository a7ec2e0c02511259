// Package main - Entry point for the ghcost HTTP server
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ghcost/api"
	"ghcost/core/catalog"
	"ghcost/core/engine"
	"ghcost/internal/config"
	"ghcost/internal/logging"
)

const version = "0.1.0"

func main() {
	conf, err := config.FromEnv()
	if err != nil {
		panic(err)
	}

	if err := logging.Initialize(conf.Logging); err != nil {
		panic(err)
	}
	logger := logging.Named("server")
	defer logging.Sync()

	logger.Info("starting ghcost server", zap.String("version", version))

	cat, err := loadCatalog(conf.Tariff.Path)
	if err != nil {
		logger.Fatal("loading tariff", zap.Error(err))
	}
	stats := cat.Stats()
	logger.Info("tariff loaded",
		zap.Int("plans", stats.Plans),
		zap.Int("compute_profiles", stats.ComputeProfiles),
		zap.Int("features", stats.Features),
	)

	server := api.NewServer(engine.New(cat, engine.WithLogger(logging.Named("engine"))), api.Options{
		Version:     version,
		EnablePprof: conf.Server.EnablePprof,
		BodyLimit:   conf.Server.BodyLimitKB * 1024,
		ReadTimeout: time.Duration(conf.Server.ReadTimeoutSeconds) * time.Second,
		Logger:      logger,
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := server.Listen(conf.Server.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}
