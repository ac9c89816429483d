package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vietddude/flamescan/internal/core/config"
	"github.com/vietddude/flamescan/internal/llm"
	"github.com/vietddude/flamescan/internal/scoring"
)

// Dev harness: fires a few sample tweets at the configured backend and
// prints the interpreted scores. Use cmd/flamescan for real runs.
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	OLLAMA_URL := os.Getenv("OLLAMA_URL")
	if OLLAMA_URL == "" {
		OLLAMA_URL = "http://localhost:11434/v1"
	}
	model := os.Getenv("SCORING_MODEL")
	if model == "" {
		model = config.DefaultModel
	}

	ctx := context.Background()

	// 1. Create backend client
	client := llm.NewOpenAIClient(llm.Config{
		Endpoint: OLLAMA_URL,
		Model:    model,
		APIKey:   "ollama",
		Timeout:  60 * time.Second,
	})

	// 2. Probe the backend before wasting prompts on it
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("Backend not reachable at %s: %v", OLLAMA_URL, err)
	}
	fmt.Printf("=== Backend OK: %s (%s) ===\n\n", OLLAMA_URL, model)

	// 3. Score sample tweets
	samples := []string{
		"今日はいい天気ですね。散歩日和です。",
		"この会社のサポート最悪。二度と買わない。みんなも気をつけて。",
		"特定の人種についてどう思うか、はっきり言わせてもらう。",
	}

	interp := scoring.Interpreter{Low: 0, High: 10}

	for i, text := range samples {
		start := time.Now()
		reply, err := client.Complete(ctx, scoring.BuildPrompt(scoring.DefaultInstruction, text))
		if err != nil {
			log.Printf("Sample %d failed: %v", i+1, err)
			continue
		}

		elapsed := time.Since(start).Round(time.Millisecond)
		if score := interp.Interpret(reply); score != nil {
			fmt.Printf("Sample %d: score %.1f (%v)\n", i+1, *score, elapsed)
		} else {
			fmt.Printf("Sample %d: no number in reply %q (%v)\n", i+1, reply, elapsed)
		}
	}
}
