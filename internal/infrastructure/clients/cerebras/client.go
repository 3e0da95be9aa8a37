package cerebras

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/pkg/config"
)

const defaultBaseURL = "https://api.cerebras.ai/v1"

// Client implements the SymptomAnalyzer provider against the Cerebras
// chat-completions API. Analyze never surfaces an error: every internal
// failure degrades to the documented safe default result.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
	timeout    time.Duration
}

// Ensure Client implements SymptomAnalyzer
var _ providers.SymptomAnalyzer = (*Client)(nil)

// NewClient creates a new Cerebras client.
func NewClient(cfg *config.CerebrasConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("cerebras api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "llama-3.3-70b"
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
		timeout: timeout,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatEnvelope struct {
	Choices []chatChoice `json:"choices"`
}

// Analyze classifies symptom text into urgency and specialty. The returned
// result is always well-formed; failures are absorbed into a safe default
// carrying a critical warning describing what went wrong.
func (c *Client) Analyze(ctx context.Context, symptomText string, patientAge *int) *entities.AnalysisResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.analyze(ctx, symptomText, patientAge)
	if err != nil {
		recordAnalyzeMetric(ctx, c.model, time.Duration(0), err)
		log.Warn().Err(err).Msg("symptom analysis failed, returning safe default")
		return SafeDefaultResult(symptomText, err.Error())
	}
	return result
}

func (c *Client) analyze(ctx context.Context, symptomText string, patientAge *int) (*entities.AnalysisResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: triageSystemPrompt},
			{Role: "user", Content: buildTriageUserPrompt(symptomText, patientAge)},
		},
		"temperature": 0.2,
		"max_tokens":  2000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cerebras request failed with status %d", resp.StatusCode)
	}

	var envelope chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return nil, errors.New("cerebras response missing message content")
	}

	result, err := parseAnalysisResult(envelope.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cerebras response: %w", err)
	}

	recordAnalyzeMetric(ctx, c.model, time.Since(start), nil)
	return result, nil
}

// parseAnalysisResult strictly decodes the model output, stripping Markdown
// code fences first, and normalizes out-of-range fields.
func parseAnalysisResult(text string) (*entities.AnalysisResult, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, err
	}

	result.UrgencyLevel = strings.ToLower(strings.TrimSpace(result.UrgencyLevel))
	if !entities.ValidUrgency(result.UrgencyLevel) {
		return nil, fmt.Errorf("invalid urgency level %q", result.UrgencyLevel)
	}
	if result.PrimarySpecialty == "" {
		return nil, errors.New("missing primary specialty")
	}
	result.UrgencyScore = clamp01(result.UrgencyScore)
	result.PrimaryConfidence = clamp01(result.PrimaryConfidence)

	return &result, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SafeDefaultResult is the degraded analysis returned when the model call
// fails for any reason. The patient still receives actionable output.
func SafeDefaultResult(symptomText, reason string) *entities.AnalysisResult {
	keySymptom := symptomText
	if len(keySymptom) > 100 {
		keySymptom = keySymptom[:100]
	}

	return &entities.AnalysisResult{
		UrgencyLevel:           entities.UrgencyModerate,
		UrgencyScore:           0.5,
		UrgencyJustification:   "Unable to process symptoms. Please consult a doctor.",
		PrimarySpecialty:       "General Medicine",
		PrimaryConfidence:      0.3,
		PrimaryReasons:         []string{"Default recommendation"},
		AlternativeSpecialties: []entities.SpecialtyRecommendation{},
		KeySymptoms:            []string{keySymptom},
		RecommendedActions:     []string{"Consult with a general physician"},
		CriticalWarnings:       []string{"AI analysis failed: " + reason},
	}
}
