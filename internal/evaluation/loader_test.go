package evaluation

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golden_cases.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadGoldenCases_ValidFile(t *testing.T) {
	content := `[
		{"id": "gc1", "symptoms": "chest pain", "expected_urgency": "critical", "expected_keywords": ["cardiology", "heart"], "difficulty": "easy"},
		{"id": "gc2", "symptoms": "itchy rash", "expected_urgency": "mild", "expected_keywords": ["dermatology"], "difficulty": "medium"}
	]`
	path := writeTempFile(t, content)

	cases, err := LoadGoldenCases(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].ID != "gc1" {
		t.Errorf("expected id gc1, got %s", cases[0].ID)
	}
	if cases[0].ExpectedUrgency != "critical" {
		t.Errorf("expected urgency critical, got %s", cases[0].ExpectedUrgency)
	}
	if len(cases[0].ExpectedKeywords) != 2 {
		t.Errorf("expected 2 keywords, got %d", len(cases[0].ExpectedKeywords))
	}
}

func TestLoadGoldenCases_MissingFile(t *testing.T) {
	if _, err := LoadGoldenCases("/nonexistent/path.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGoldenCases_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `not valid json`)
	if _, err := LoadGoldenCases(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidateGoldenCases_Valid(t *testing.T) {
	cases := []GoldenCase{
		{ID: "gc1", Symptoms: "chest pain", ExpectedUrgency: "critical", Difficulty: "easy"},
		{ID: "gc2", Symptoms: "rash", ExpectedUrgency: "mild", Difficulty: "hard"},
	}
	if err := ValidateGoldenCases(cases); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateGoldenCases_Rejects(t *testing.T) {
	bad := map[string][]GoldenCase{
		"missing id":       {{Symptoms: "x", ExpectedUrgency: "mild", Difficulty: "easy"}},
		"duplicate id":     {{ID: "a", Symptoms: "x", ExpectedUrgency: "mild", Difficulty: "easy"}, {ID: "a", Symptoms: "y", ExpectedUrgency: "mild", Difficulty: "easy"}},
		"missing symptoms": {{ID: "a", ExpectedUrgency: "mild", Difficulty: "easy"}},
		"bad urgency":      {{ID: "a", Symptoms: "x", ExpectedUrgency: "catastrophic", Difficulty: "easy"}},
		"bad difficulty":   {{ID: "a", Symptoms: "x", ExpectedUrgency: "mild", Difficulty: "trivial"}},
	}

	for name, cases := range bad {
		if err := ValidateGoldenCases(cases); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
