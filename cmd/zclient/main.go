package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prhmhoseyni/pod-zclient/internal/config"
	"github.com/prhmhoseyni/pod-zclient/internal/crypto"
	"github.com/prhmhoseyni/pod-zclient/internal/ensemble"
	"github.com/prhmhoseyni/pod-zclient/internal/logger"
	"github.com/prhmhoseyni/pod-zclient/internal/sink"
	"github.com/prhmhoseyni/pod-zclient/internal/syncer"
	"github.com/prhmhoseyni/pod-zclient/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("zclient")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	cipher, err := crypto.NewValueCipher(cfg.Watch.DecryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create value cipher")
	}

	client, err := syncer.New(syncer.Config{
		Servers:        cfg.Ensemble.Servers,
		Username:       cfg.Ensemble.Username,
		Password:       cfg.Ensemble.Password,
		Path:           cfg.Watch.Path,
		SessionTimeout: cfg.Ensemble.SessionTimeout,
		Retry: syncer.RetryPolicy{
			InitialDelay: cfg.Retry.InitialDelay,
			MaxDelay:     cfg.Retry.MaxDelay,
			Jitter:       cfg.Retry.Jitter,
			MaxAttempts:  cfg.Retry.MaxAttempts,
		},
		OnUpdate: func(s models.UpdateSummary) {
			log.Info().
				Int("applied", s.Applied).
				Int32("node_version", s.Version).
				Msg("configuration updated")
		},
	}, ensemble.NewDialer(log), cipher, sink.NewProcessEnv(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sync client error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = client.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("sync client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
