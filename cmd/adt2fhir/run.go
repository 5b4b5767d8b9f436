package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diz-unimr/adt2fhir/internal/api"
	"github.com/diz-unimr/adt2fhir/internal/config"
	"github.com/diz-unimr/adt2fhir/internal/logging"
	"github.com/diz-unimr/adt2fhir/internal/mapping"
	"github.com/diz-unimr/adt2fhir/internal/resourcemap"
	"github.com/diz-unimr/adt2fhir/internal/stats"
	"github.com/diz-unimr/adt2fhir/internal/stream"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the streaming transformation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*configPath)
		},
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.App.LogLevel)

	resources, err := resourcemap.Load(
		filepath.Join(cfg.App.MappingDir, "InfoByAbteilungskuerzel.json"),
		filepath.Join(cfg.App.MappingDir, "InfoByKostenstelle.json"),
	)
	if err != nil {
		log.Error().Err(err).Msg("loading mapping fixtures failed")
		return err
	}

	engine := mapping.New(cfg.Fhir, resources)
	registry := stats.NewRegistry()

	processor, err := stream.NewProcessor(cfg.Kafka, engine, registry, log)
	if err != nil {
		log.Error().Err(err).Msg("building bus clients failed")
		return err
	}

	server := api.NewServer(registry)
	httpServer := &http.Server{
		Addr:         cfg.App.AdminAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.App.AdminAddr).Msg("admin surface listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("admin surface failed")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		cancel()
	}()

	server.SetReady()
	log.Info().
		Str("input", cfg.Kafka.InputTopic).
		Str("output", cfg.Kafka.OutputTopic).
		Int("workers", cfg.Kafka.Partitions).
		Msg("processing started")

	processor.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("admin surface shutdown failed")
	}

	log.Info().Msg("stopped")
	return nil
}
