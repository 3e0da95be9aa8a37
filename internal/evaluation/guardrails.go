package evaluation

type GuardrailConfig struct {
	MinSpecialtyConfidence float64
	MaxKeywordExpansion    int
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxKeywordExpansion <= 0 {
		config.MaxKeywordExpansion = 20
	}
	return &Guardrails{config: config}
}

// ShouldTrust reports whether the classifier's specialty confidence clears
// the floor; below it the prediction is scored as a miss.
func (g *Guardrails) ShouldTrust(confidence float64) bool {
	return confidence >= g.config.MinSpecialtyConfidence
}

func (g *Guardrails) LimitExpansion(keywords []string) []string {
	if len(keywords) > g.config.MaxKeywordExpansion {
		return keywords[:g.config.MaxKeywordExpansion]
	}
	return keywords
}
