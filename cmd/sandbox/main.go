package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/wecare/internal/config"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/sandbox"
)

const (
	limiterSweep = time.Minute
	otpSweep     = 10 * time.Minute
)

func main() {
	log := logger.New("sandbox")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	sb, err := sandbox.Open(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to build sandbox: %v", err)
	}
	defer sb.Close()

	stop := make(chan struct{})
	if sb.Limiter != nil {
		go sb.Limiter.Run(limiterSweep, stop)
	}
	go sb.RunCleanup(otpSweep, stop)

	srv := &http.Server{
		Addr:              ":" + cfg.Sandbox.Port,
		Handler:           middleware.Recovery(log)(sb.Handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Sandbox.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down sandbox...")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Shutdown error: %v", err)
	}
	log.Info("Sandbox stopped")
}
