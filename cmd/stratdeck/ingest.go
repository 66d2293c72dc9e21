package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/newthinker/stratdeck/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the data file from HTML backtest reports",
	Long: `Parse every *.html report under data.reports_prefix and write the
strategy records to data.file. Reports that fail to parse are logged and skipped.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating app: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	log.Info("ingest complete",
		zap.Int("scanned", res.Scanned),
		zap.Int("parsed", res.Parsed),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d strategies to %s\n", res.Parsed, cfg.Data.File)
	return nil
}
