package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/vietddude/flamescan/internal/control"
	"github.com/vietddude/flamescan/internal/core/config"
	"github.com/vietddude/stylelog"
)

var (
	cfgPath    string
	isDebug    bool
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "flamescan",
	Short: "Flamescan tweet scoring service",
	Long:  `Flamescan rates every tweet in a Twitter archive export for flame-up risk via an LLM backend, resuming from its result store after interruptions.`,
	Run:   runScore,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file. A missing file is only an error
// when the user asked for a specific path; the defaults cover a plain
// `flamescan` run next to a tweets.js export.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the terminal progress bar")
}

func runScore(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := loadConfig(cmd)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	// The bar is created on the first callback, once the total is
	// known. Callbacks arrive sequentially from the pipeline writer.
	var bar *progressbar.ProgressBar
	onProgress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("scoring"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}
	if noProgress {
		onProgress = nil
	}

	// Transform config
	controlCfg := control.Config{
		Port:       cfg.Server.Port,
		Archive:    cfg.Archive,
		Store:      cfg.Store,
		Scoring:    cfg.Scoring,
		Cache:      cfg.Cache,
		Events:     cfg.Events,
		OnProgress: onProgress,
	}

	// Initialize Runner
	app, err := control.NewRunner(controlCfg)
	if err != nil {
		slog.Error("Failed to initialize runner", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	var runErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		cancel()
		runErr = <-done
	case runErr = <-done:
	}

	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(os.Stderr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	if runErr != nil {
		slog.Error("Scoring run failed", "error", runErr)
		os.Exit(1)
	}
}
