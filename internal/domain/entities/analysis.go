package entities

import "time"

// Urgency levels produced by the symptom analyzer
const (
	UrgencyCritical = "critical"
	UrgencyModerate = "moderate"
	UrgencyMild     = "mild"
)

// ValidUrgency reports whether level is one of the defined urgency constants.
func ValidUrgency(level string) bool {
	switch level {
	case UrgencyCritical, UrgencyModerate, UrgencyMild:
		return true
	}
	return false
}

// SpecialtyRecommendation is one specialty suggestion with supporting reasons
type SpecialtyRecommendation struct {
	Specialty  string   `json:"specialty"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// AnalysisResult is the structured output of the symptom analyzer.
// The analyzer guarantees a well-formed result on every call; on internal
// failure it degrades to a safe default instead of erroring (see the
// cerebras client).
type AnalysisResult struct {
	UrgencyLevel           string                    `json:"urgency_level"`
	UrgencyScore           float64                   `json:"urgency_score"`
	UrgencyJustification   string                    `json:"urgency_justification"`
	PrimarySpecialty       string                    `json:"primary_specialty"`
	PrimaryConfidence      float64                   `json:"primary_confidence"`
	PrimaryReasons         []string                  `json:"primary_reasons"`
	AlternativeSpecialties []SpecialtyRecommendation `json:"alternative_specialties"`
	KeySymptoms            []string                  `json:"key_symptoms"`
	RecommendedActions     []string                  `json:"recommended_actions"`
	CriticalWarnings       []string                  `json:"critical_warnings"`
}

// UrgencyAssessment is the urgency portion of a routing decision
type UrgencyAssessment struct {
	Level         string  `json:"level"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// RoutingDecision is the full recommendation assembled for a symptom analysis
type RoutingDecision struct {
	Urgency                UrgencyAssessment         `json:"urgency"`
	PrimarySpecialty       SpecialtyRecommendation   `json:"primary_specialty"`
	AlternativeSpecialties []SpecialtyRecommendation `json:"alternative_specialties"`
	RecommendedFacilities  []FacilityMatch           `json:"recommended_facilities"`
	RecommendedActions     []string                  `json:"recommended_actions"`
	Disclaimer             string                    `json:"disclaimer"`
}

// DefaultDisclaimer accompanies every routing decision.
const DefaultDisclaimer = "This is AI-generated guidance. Always consult qualified medical professionals."

// SymptomAnalysis is a persisted analysis record
type SymptomAnalysis struct {
	RequestID        string          `json:"request_id" db:"request_id"`
	UserID           string          `json:"user_id" db:"user_id"`
	SymptomText      string          `json:"symptom_description" db:"symptom_description"`
	PatientAge       *int            `json:"patient_age,omitempty" db:"patient_age"`
	Decision         RoutingDecision `json:"routing_decision" db:"-"`
	AnalyzedAt       time.Time       `json:"analysis_timestamp" db:"analyzed_at"`
	ProcessingTimeMs float64         `json:"processing_time_ms" db:"processing_time_ms"`
}

// MatchedDoctor is the redacted doctor view embedded in a routing result
type MatchedDoctor struct {
	DoctorID        string `json:"doctor_id"`
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	FacilityName    string `json:"facility_name,omitempty"`
	IsOnline        bool   `json:"is_online"`
}

// RoutingResult is the caller-facing summary of a connect-with-doctor call
type RoutingResult struct {
	RequestID        string          `json:"request_id"`
	Status           string          `json:"status"`
	UrgencyLevel     string          `json:"urgency_level"`
	PrimarySpecialty string          `json:"primary_specialty"`
	MatchingDoctors  []MatchedDoctor `json:"matching_doctors"`
	Message          string          `json:"message"`
	ProcessingTimeMs float64         `json:"processing_time_ms"`
}
