package cerebras

import (
	"context"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
)

// OfflineAnalyzer always returns the safe default result. It stands in for
// the model API when no key is configured so routing still works end to end.
type OfflineAnalyzer struct{}

var _ providers.SymptomAnalyzer = (*OfflineAnalyzer)(nil)

// NewOfflineAnalyzer creates a new offline analyzer.
func NewOfflineAnalyzer() *OfflineAnalyzer {
	return &OfflineAnalyzer{}
}

// Analyze returns the safe default result for any input.
func (a *OfflineAnalyzer) Analyze(_ context.Context, symptomText string, _ *int) *entities.AnalysisResult {
	return SafeDefaultResult(symptomText, "analyzer not configured")
}
