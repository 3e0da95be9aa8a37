package services

import (
	"sort"
	"strings"
)

// SpecialtyResolver turns a free-text specialty label from the symptom
// analyzer into search terms for the matchers. Matching is substring-based;
// the interface isolates it so a future implementation can swap in an
// ontology or embedding matcher without touching the matchers.
type SpecialtyResolver interface {
	// Resolve expands a specialty label into the keyword variants used for
	// doctor matching. Never returns an empty set: with no table match it
	// degrades to the lowercased input itself.
	Resolve(rawSpecialty string) []string

	// ResolveSymptoms maps a specialty label onto canonical specialties via
	// the symptom vocabulary, for facility matching. Same non-empty
	// guarantee as Resolve.
	ResolveSymptoms(rawSpecialty string) []string
}

// KeywordResolver is the table-driven SpecialtyResolver. The tables are
// package-level constants, immutable after init.
type KeywordResolver struct{}

// NewKeywordResolver creates the table-driven resolver
func NewKeywordResolver() SpecialtyResolver {
	return &KeywordResolver{}
}

// Resolve expands rawSpecialty into doctor-search keywords. A canonical
// entry contributes its whole keyword set when the canonical name and the
// input contain each other in either direction, or when any of its keywords
// appears inside the input.
func (r *KeywordResolver) Resolve(rawSpecialty string) []string {
	specialty := strings.ToLower(strings.TrimSpace(rawSpecialty))
	// The empty string is a substring of every canonical name; without this
	// guard it would expand to the entire table instead of the fallback.
	if specialty == "" {
		return []string{""}
	}

	keywords := make(map[string]struct{})
	for name, variants := range doctorSpecialtyKeywords {
		matched := strings.Contains(specialty, name) || strings.Contains(name, specialty)
		if !matched {
			for _, kw := range variants {
				if strings.Contains(specialty, kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			for _, kw := range variants {
				keywords[kw] = struct{}{}
			}
		}
	}

	if len(keywords) == 0 {
		return []string{specialty}
	}

	return sortedSet(keywords)
}

// ResolveSymptoms maps rawSpecialty onto canonical specialties. A canonical
// entry matches when any of its symptom keywords appears inside the input.
func (r *KeywordResolver) ResolveSymptoms(rawSpecialty string) []string {
	specialty := strings.ToLower(strings.TrimSpace(rawSpecialty))

	matched := make(map[string]struct{})
	for name, keywords := range facilitySpecialtyKeywords {
		for _, kw := range keywords {
			if strings.Contains(specialty, kw) {
				matched[name] = struct{}{}
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{specialty}
	}

	return sortedSet(matched)
}

// sortedSet keeps resolver output deterministic for tests and logs
func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
