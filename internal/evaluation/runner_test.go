package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayumitra/telemed-backend/internal/application/services"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

type scriptedAnalyzer struct {
	results map[string]*entities.AnalysisResult
}

func (a *scriptedAnalyzer) Analyze(_ context.Context, symptomText string, _ *int) *entities.AnalysisResult {
	if r, ok := a.results[symptomText]; ok {
		return r
	}
	return &entities.AnalysisResult{
		UrgencyLevel:      entities.UrgencyModerate,
		PrimarySpecialty:  "General Medicine",
		PrimaryConfidence: 0.3,
	}
}

func TestRunner_ScoresUrgencyAndKeywords(t *testing.T) {
	analyzer := &scriptedAnalyzer{results: map[string]*entities.AnalysisResult{
		"chest pain": {
			UrgencyLevel:      entities.UrgencyCritical,
			PrimarySpecialty:  "Cardiology",
			PrimaryConfidence: 0.9,
		},
	}}

	runner := NewRunner(analyzer, services.NewKeywordResolver())

	cases := []GoldenCase{
		{ID: "gc1", Symptoms: "chest pain", ExpectedUrgency: entities.UrgencyCritical, ExpectedKeywords: []string{"cardiology", "heart"}, Difficulty: "easy"},
		{ID: "gc2", Symptoms: "something odd", ExpectedUrgency: entities.UrgencyMild, ExpectedKeywords: []string{"dermatology"}, Difficulty: "hard"},
	}

	summary, err := runner.Run(context.Background(), cases)

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCases)
	// gc1 correct, gc2 predicted moderate instead of mild
	assert.InDelta(t, 0.5, summary.UrgencyAccuracy, 1e-9)
	// gc1 keywords fully recovered, gc2 misses entirely
	assert.InDelta(t, 0.5, summary.AvgRecallAt10, 1e-9)
	assert.Equal(t, 1, summary.ByUrgency[entities.UrgencyCritical].Count)
	assert.Equal(t, 1, summary.ByUrgency[entities.UrgencyMild].Count)
}

func TestRunner_LowConfidencePredictionsScoreZero(t *testing.T) {
	analyzer := &scriptedAnalyzer{results: map[string]*entities.AnalysisResult{
		"chest pain": {
			UrgencyLevel:      entities.UrgencyCritical,
			PrimarySpecialty:  "Cardiology",
			PrimaryConfidence: 0.05,
		},
	}}

	runner := NewRunner(analyzer, services.NewKeywordResolver())

	summary, err := runner.Run(context.Background(), []GoldenCase{
		{ID: "gc1", Symptoms: "chest pain", ExpectedUrgency: entities.UrgencyCritical, ExpectedKeywords: []string{"cardiology"}, Difficulty: "easy"},
	})

	assert.NoError(t, err)
	assert.InDelta(t, 0.0, summary.AvgRecallAt10, 1e-9)
	// Urgency is still scored even when the specialty is untrusted
	assert.InDelta(t, 1.0, summary.UrgencyAccuracy, 1e-9)
}
