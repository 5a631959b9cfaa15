package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/pelageech/staticserv/config"
	"github.com/pelageech/staticserv/metrics"
	"github.com/pelageech/staticserv/mimetypes"
	"github.com/pelageech/staticserv/static"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "[staticserv]",
	})

	root, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get the working directory", "err", err)
	}

	cfg := config.NewServerConfig(root)
	if err := cfg.Validate(validator.New()); err != nil {
		logger.Fatal(err)
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	server := static.New(cfg, mimetypes.New(), m, logger)

	ln, err := static.Listen(cfg)
	if err != nil {
		logger.Fatal("There's problem with listening", "err", err)
	}

	fmt.Printf("Serving at %s\n", cfg.URL())
	logger.Info("Ready!", "root", cfg.Root, "addr", ln.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, ln); err != nil {
		logger.Error("Server stopped", "err", err)
		os.Exit(1)
	}

	s := m.Summary()
	logger.Info("Stopped",
		"requests", s.Requests,
		"by_code", s.ByCode,
		"bytes", s.BytesSent,
		"allocated_memory", s.AllocatedMemory,
	)
}
