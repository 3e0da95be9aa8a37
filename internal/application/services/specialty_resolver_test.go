package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayumitra/telemed-backend/internal/application/services"
)

func TestKeywordResolver_Resolve_ExpandsCanonicalSpecialty(t *testing.T) {
	resolver := services.NewKeywordResolver()

	keywords := resolver.Resolve("Cardiologist")

	assert.Contains(t, keywords, "cardiology")
	assert.Contains(t, keywords, "heart")
	assert.Contains(t, keywords, "cardiac")
}

func TestKeywordResolver_Resolve_EmptyInput(t *testing.T) {
	resolver := services.NewKeywordResolver()

	assert.Equal(t, []string{""}, resolver.Resolve(""))
	assert.Equal(t, []string{""}, resolver.Resolve("   "))
}

func TestKeywordResolver_Resolve_UnknownSpecialtyFallsBackToInput(t *testing.T) {
	resolver := services.NewKeywordResolver()

	keywords := resolver.Resolve("Astrology")

	assert.Equal(t, []string{"astrology"}, keywords)
}

func TestKeywordResolver_Resolve_IsReflexive(t *testing.T) {
	resolver := services.NewKeywordResolver()

	// Every canonical specialty must expand to a set containing itself
	canonical := []string{
		"neurosurgery", "neurology", "cardiology", "orthopedics",
		"gastroenterology", "pulmonology", "dermatology", "ophthalmology",
		"general medicine", "emergency medicine",
	}

	for _, name := range canonical {
		keywords := resolver.Resolve(name)
		found := false
		for _, kw := range keywords {
			if strings.Contains(name, kw) || strings.Contains(kw, name) {
				found = true
				break
			}
		}
		assert.True(t, found, "resolve(%q) should cover the input itself, got %v", name, keywords)
	}
}

func TestKeywordResolver_Resolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	resolver := services.NewKeywordResolver()

	assert.Equal(t, resolver.Resolve("cardiology"), resolver.Resolve("  CARDIOLOGY  "))
}

func TestKeywordResolver_ResolveSymptoms_MapsVocabularyToCanonical(t *testing.T) {
	resolver := services.NewKeywordResolver()

	specialties := resolver.ResolveSymptoms("Heart Specialist")

	assert.Contains(t, specialties, "cardiology")
}

func TestKeywordResolver_ResolveSymptoms_SharedKeywordHitsBothNeuroTables(t *testing.T) {
	resolver := services.NewKeywordResolver()

	// "brain" appears in both neurology and neurosurgery vocabularies
	specialties := resolver.ResolveSymptoms("brain specialist")

	assert.Contains(t, specialties, "neurology")
	assert.Contains(t, specialties, "neurosurgery")
}

func TestKeywordResolver_ResolveSymptoms_UnknownFallsBackToInput(t *testing.T) {
	resolver := services.NewKeywordResolver()

	assert.Equal(t, []string{"astrology"}, resolver.ResolveSymptoms("Astrology"))
}
