// Command server exposes club-name normalization and time bucketing over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/monegros/internal/adapters/logger"
	"github.com/baditaflorin/monegros/internal/adapters/normalizer"
	"github.com/baditaflorin/monegros/internal/config"
	"github.com/baditaflorin/monegros/internal/core/club"
	"github.com/baditaflorin/monegros/internal/transport/httpapi"
	"github.com/baditaflorin/monegros/internal/warmup"
)

// Default configuration
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultConcurrency  = 0 // 0 means use GOMAXPROCS
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log, err := logger.NewStdLogger(logger.Options{File: cfg.Log.File, JSON: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting club normalizer HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", *concurrency,
		"full_folding", cfg.Analysis.FullFolding,
		"compose_unicode", cfg.Analysis.ComposeUnicode,
	)

	kind := normalizer.OptimizedNormalizerType
	if cfg.Analysis.FullFolding {
		kind = normalizer.DefaultNormalizerType
	}
	folder := normalizer.NewNormalizerFactory().CreateNormalizer(kind, cfg.Analysis.ComposeUnicode)
	clubs := club.NewNormalizer(folder)
	if *warmUp {
		wm := warmup.NewManager(log, warmup.DefaultWarmupConfig())
		wm.RegisterNormalizer(folder)
		wm.RegisterClubNormalizer(clubs)
		wm.WarmUp(context.Background())
	}
	api := httpapi.NewServer(clubs, log)

	server := &fasthttp.Server{
		Handler:               api.Handle,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}
