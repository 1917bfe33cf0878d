package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ncstfeed/api"
	"ncstfeed/common"
	"ncstfeed/config"
	"ncstfeed/orchestrator"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	if err := common.ConfigureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("logging error: %v", err)
	}

	pipeline := orchestrator.New(cfg)
	defer pipeline.Close()

	server := api.NewServer(pipeline.Cache, pipeline.Normalizer, api.Options{
		Sources:              cfg.Sources,
		Channel:              cfg.Channel,
		JSONShape:            cfg.JSONShape,
		AllowedOrigins:       cfg.AllowedOrigins,
		PlaceholderOnFailure: cfg.PlaceholderOnFailure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for i, src := range cfg.Sources {
		logrus.WithFields(logrus.Fields{"order": i + 1, "kind": src.Kind, "url": src.URL}).Info("upstream source")
	}
	logrus.Printf("Starting API server on %s", srv.Addr)
	logrus.Println("API endpoints available:")
	logrus.Println("  GET  /")
	logrus.Println("  GET  /api/health")
	logrus.Println("  GET  /api/announcements")
	logrus.Println("  GET  /rss")
	logrus.Println("  GET  /api/sources")
	logrus.Println("  POST /api/refresh")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("shutdown")
	}
	logrus.Info("server stopped")
}
