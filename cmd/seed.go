package main

import (
	app "github.com/okian/catalog/internal/app"
	"github.com/okian/catalog/pkg/logger"
	"github.com/spf13/cobra"
)

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := app.New(
		app.WithLogger(log.Named("catalog")),
		app.WithDatabaseURL(cfg.DatabaseURL),
		app.WithSeed(true),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err))
		return err
	}
	defer svc.Stop()

	report := svc.SeedReport()
	log.Info(ctx, "seed complete",
		logger.String("database_url", cfg.DatabaseURL),
		logger.Int("products", report.Products),
		logger.Int("dealerPriceLists", report.PriceLists),
	)
	return nil
}
