package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/flamescan/internal/control"
	"github.com/vietddude/flamescan/internal/core/config"
)

// writeArchive builds a tweets.js export with n sequentially numbered
// tweets and returns its path.
func writeArchive(t *testing.T, dir string, n int) string {
	t.Helper()

	type tweet struct {
		IDStr    string `json:"id_str"`
		FullText string `json:"full_text"`
	}
	type record struct {
		Tweet tweet `json:"tweet"`
	}

	records := make([]record, n)
	for i := range records {
		records[i] = record{Tweet: tweet{
			IDStr:    fmt.Sprintf("%d", 1000+i),
			FullText: fmt.Sprintf("tweet number %d", i),
		}}
	}

	body, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "tweets.js")
	content := append([]byte("window.YTD.tweets.part0 = "), body...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readResults(t *testing.T, path string) [][3]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("results file unreadable: %v", err)
	}
	var rows [][3]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("results file is not a triple array: %v", err)
	}
	return rows
}

func TestGracefulShutdownAndResume(t *testing.T) {
	const total = 12

	// A deliberately slow backend so the run is still in flight when
	// the context is canceled.
	var delayMs atomic.Int64
	delayMs.Store(150)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(delayMs.Load()) * time.Millisecond)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"5"}}]}`)
	}))
	defer backend.Close()

	dir := t.TempDir()
	cfg := control.Config{
		Archive: config.ArchiveConfig{Path: writeArchive(t, dir, total)},
		Store:   config.StoreConfig{Path: filepath.Join(dir, "results.json")},
		Scoring: config.ScoringConfig{
			Model:       "test-model",
			Endpoint:    backend.URL,
			APIKey:      "test",
			Concurrency: 3,
			MaxAttempts: 2,
			ScoreMax:    10,
		},
	}

	runner, err := control.NewRunner(cfg)
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	runError := make(chan error, 1)
	go func() {
		runError <- runner.Run(ctx)
	}()

	// Let the first couple of waves land, then trigger shutdown.
	time.Sleep(400 * time.Millisecond)
	cancel()

	select {
	case err := <-runError:
		if err != nil {
			t.Errorf("Run returned error on shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return within 10s of cancel")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := runner.Stop(stopCtx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}

	// The interrupted store must be valid JSON with a strict subset of
	// the archive in it.
	rows := readResults(t, cfg.Store.Path)
	if len(rows) == 0 {
		t.Fatal("nothing persisted before shutdown")
	}
	if len(rows) >= total {
		t.Fatalf("store has %d rows after early shutdown, want fewer than %d", len(rows), total)
	}
	t.Logf("persisted %d/%d outcomes before shutdown", len(rows), total)

	// A second run over the same store finishes the job without
	// touching the already scored tweets.
	delayMs.Store(0)
	resumed, err := control.NewRunner(cfg)
	if err != nil {
		t.Fatalf("Failed to create resumed runner: %v", err)
	}
	if err := resumed.Run(context.Background()); err != nil {
		t.Fatalf("Resumed run failed: %v", err)
	}
	_ = resumed.Stop(context.Background())

	rows = readResults(t, cfg.Store.Path)
	if len(rows) != total {
		t.Fatalf("store has %d rows after resume, want %d", len(rows), total)
	}

	seen := make(map[any]bool, total)
	for _, row := range rows {
		if seen[row[0]] {
			t.Errorf("tweet %v stored twice", row[0])
		}
		seen[row[0]] = true
	}
}
