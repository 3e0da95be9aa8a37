package providers

import (
	"context"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// SymptomAnalyzer is the external AI oracle that classifies symptom text.
// Implementations must be total: internal failures (transport, malformed
// output, timeouts) degrade to a safe default result carrying a warning,
// never to an error. Callers always receive a well-formed AnalysisResult.
type SymptomAnalyzer interface {
	Analyze(ctx context.Context, symptomText string, patientAge *int) *entities.AnalysisResult
}
