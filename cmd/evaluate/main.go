package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/evaluation"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/cerebras"
	"github.com/ayumitra/telemed-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var analyzer providers.SymptomAnalyzer
	if cfg.Cerebras.APIKey == "" {
		log.Println("CEREBRAS_API_KEY not set, evaluating with the offline analyzer")
		analyzer = cerebras.NewOfflineAnalyzer()
	} else {
		client, err := cerebras.NewClient(&cfg.Cerebras)
		if err != nil {
			log.Fatalf("Failed to initialize analysis client: %v", err)
		}
		analyzer = client
	}

	goldenPath := "config/golden_cases.json"
	if _, err := os.Stat(goldenPath); err != nil {
		if len(os.Args) > 1 {
			goldenPath = os.Args[1]
		} else {
			log.Fatalf("Golden cases file not found at %s", goldenPath)
		}
	}

	cases, err := evaluation.LoadGoldenCases(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	runner := evaluation.NewRunner(analyzer, services.NewKeywordResolver())
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
