package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vietddude/flamescan/internal/archive"
	"github.com/vietddude/flamescan/internal/control"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how much of the archive has been scored",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	tweets, err := archive.Load(cfg.Archive.Path)
	if err != nil {
		slog.Error("Failed to load archive", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, cleanup, err := control.OpenStore(ctx, cfg.Store)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	outcomes, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load outcomes", "error", err)
		os.Exit(1)
	}

	var scored, nulls int
	for _, o := range outcomes {
		if o.Scored() {
			scored++
		} else {
			nulls++
		}
	}

	completed, err := store.CompletedIDs(ctx)
	if err != nil {
		slog.Error("Failed to load completed ids", "error", err)
		os.Exit(1)
	}
	pending := 0
	for _, tw := range tweets {
		if _, done := completed[tw.ID]; !done {
			pending++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "TWEETS\tSTORED\tSCORED\tNULL\tPENDING")
	_, _ = fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", len(tweets), len(outcomes), scored, nulls, pending)
	_ = w.Flush()
}
