package evaluation

import (
	"context"
	"time"

	"github.com/ayumitra/telemed-backend/internal/domain/providers"
)

// SpecialtyExpander maps a raw specialty label to its matching keyword set.
type SpecialtyExpander interface {
	Resolve(specialty string) []string
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	analyzer   providers.SymptomAnalyzer
	resolver   SpecialtyExpander
	guardrails *Guardrails
}

func NewRunner(analyzer providers.SymptomAnalyzer, resolver SpecialtyExpander) *Runner {
	return &Runner{
		analyzer:   analyzer,
		resolver:   resolver,
		guardrails: NewGuardrails(GuardrailConfig{MinSpecialtyConfidence: 0.2}),
	}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*Summary, error) {
	summary := &Summary{
		TotalCases: len(cases),
		ByUrgency:  make(map[string]*UrgencySummary),
	}

	for _, gc := range cases {
		start := time.Now()
		analysis := r.analyzer.Analyze(ctx, gc.Symptoms, nil)
		duration := time.Since(start)

		var keywords []string
		if r.guardrails.ShouldTrust(analysis.PrimaryConfidence) {
			keywords = r.guardrails.LimitExpansion(r.resolver.Resolve(analysis.PrimarySpecialty))
		}

		result := CaseResult{
			CaseID:            gc.ID,
			Symptoms:          gc.Symptoms,
			PredictedUrgency:  analysis.UrgencyLevel,
			UrgencyCorrect:    analysis.UrgencyLevel == gc.ExpectedUrgency,
			PredictedKeywords: keywords,
			RecallAt10:        RecallAtK(gc.ExpectedKeywords, keywords, 10),
			MRRAt10:           MRRAtK(gc.ExpectedKeywords, keywords, 10),
			Latency:           duration,
		}

		r.updateSummary(summary, gc, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *Summary, gc GoldenCase, res CaseResult) {
	s.AvgRecallAt10 += res.RecallAt10
	s.AvgMRRAt10 += res.MRRAt10
	s.AvgLatency += res.Latency
	if res.UrgencyCorrect {
		s.UrgencyAccuracy++
	}

	if _, ok := s.ByUrgency[gc.ExpectedUrgency]; !ok {
		s.ByUrgency[gc.ExpectedUrgency] = &UrgencySummary{}
	}
	us := s.ByUrgency[gc.ExpectedUrgency]
	us.Count++
	us.AvgRecallAt10 += res.RecallAt10
	if res.UrgencyCorrect {
		us.UrgencyAccuracy++
	}
}

func (r *Runner) finalizeSummary(s *Summary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.UrgencyAccuracy /= n
		s.AvgRecallAt10 /= n
		s.AvgMRRAt10 /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, us := range s.ByUrgency {
		if us.Count > 0 {
			n := float64(us.Count)
			us.UrgencyAccuracy /= n
			us.AvgRecallAt10 /= n
		}
	}
}
