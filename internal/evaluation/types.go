package evaluation

import "time"

// GoldenCase represents a labeled symptom description with expected outcomes.
type GoldenCase struct {
	ID               string   `json:"id"`
	Symptoms         string   `json:"symptoms"`
	ExpectedUrgency  string   `json:"expected_urgency"`
	ExpectedKeywords []string `json:"expected_keywords"`
	Difficulty       string   `json:"difficulty"` // easy, medium, hard
}

// CaseResult holds the evaluation outcome for a single golden case.
type CaseResult struct {
	CaseID            string
	Symptoms          string
	PredictedUrgency  string
	UrgencyCorrect    bool
	PredictedKeywords []string
	RecallAt10        float64
	MRRAt10           float64
	Latency           time.Duration
}

// Summary holds aggregate metrics across all golden cases.
type Summary struct {
	TotalCases      int
	UrgencyAccuracy float64
	AvgRecallAt10   float64
	AvgMRRAt10      float64
	AvgLatency      time.Duration
	ByUrgency       map[string]*UrgencySummary
}

// UrgencySummary holds metrics grouped by expected urgency level.
type UrgencySummary struct {
	Count           int
	UrgencyAccuracy float64
	AvgRecallAt10   float64
}
