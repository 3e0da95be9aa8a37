package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardrails_RejectLowConfidence(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinSpecialtyConfidence: 0.6})

	assert.False(t, g.ShouldTrust(0.5))
	assert.True(t, g.ShouldTrust(0.6))
	assert.True(t, g.ShouldTrust(0.9))
}

func TestGuardrails_LimitExpansion(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MaxKeywordExpansion: 3})

	keywords := []string{"cardiology", "cardiologist", "heart", "cardiac", "chest"}
	limited := g.LimitExpansion(keywords)

	assert.Equal(t, []string{"cardiology", "cardiologist", "heart"}, limited)
}

func TestGuardrails_DefaultExpansionCap(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	keywords := make([]string, 30)
	limited := g.LimitExpansion(keywords)

	assert.Len(t, limited, 20)
}
