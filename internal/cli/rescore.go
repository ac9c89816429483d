package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vietddude/flamescan/internal/control"
)

var rescoreDryRun bool

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Drop null-scored outcomes so the next run retries them",
	Run:   runRescore,
}

func init() {
	rootCmd.AddCommand(rescoreCmd)
	rescoreCmd.Flags().BoolVar(&rescoreDryRun, "dry-run", false, "only report how many outcomes would be dropped")
}

func runRescore(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, cleanup, err := control.OpenStore(ctx, cfg.Store)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if rescoreDryRun {
		outcomes, err := store.Load(ctx)
		if err != nil {
			slog.Error("Failed to load outcomes", "error", err)
			os.Exit(1)
		}
		nulls := 0
		for _, o := range outcomes {
			if !o.Scored() {
				nulls++
			}
		}
		fmt.Printf("%d null outcomes would be dropped\n", nulls)
		return
	}

	removed, err := store.DeleteUnscored(ctx)
	if err != nil {
		slog.Error("Failed to drop null outcomes", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Dropped %d null outcomes; run flamescan to score them again\n", removed)
}
