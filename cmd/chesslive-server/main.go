// Package main implements the chesslive server: RESTful game resources, a
// websocket session protocol and an AI move advisor.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chesslive/internal/server/advisor"
	"chesslive/internal/server/config"
	"chesslive/internal/server/http"
	"chesslive/internal/server/store"
	"chesslive/internal/server/ws"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	// Command-line flags override the environment
	var (
		host = flag.String("host", "", "Server host (overrides HOST)")
		port = flag.Int("port", 0, "Server port (overrides PORT)")
		dev  = flag.Bool("dev", false, "Development mode (relaxed rate limits, verbose logging)")
	)
	flag.Parse()

	var log *zap.Logger
	var err error
	if *dev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", zap.Error(err))
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	// 1. Session store
	st := store.New()

	// 2. Move advisor for the configured provider
	adv, err := advisor.New(cfg, log)
	if err != nil {
		log.Fatal("initialize advisor", zap.Error(err))
	}

	// 3. Websocket hub and session protocol handler
	hub := ws.NewHub(log)
	wsh := ws.NewHandler(st, adv, hub, cfg.AIThinkingDelay(), log)

	// 4. Fiber app with resource routes and the /ws upgrade
	app := http.NewFiberApp(st, adv, wsh, cfg, *dev, log)

	addr := cfg.Addr()
	go func() {
		log.Info("chesslive server starting",
			zap.String("addr", addr),
			zap.String("aiProvider", cfg.AIProvider),
			zap.Bool("dev", *dev))
		log.Info("endpoints",
			zap.String("games", "http://"+addr+"/games"),
			zap.String("ws", "ws://"+addr+"/ws"),
			zap.String("health", "http://"+addr+"/health"))

		if err := app.Listen(addr); err != nil {
			log.Error("server listen error", zap.Error(err))
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
