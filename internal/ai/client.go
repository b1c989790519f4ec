// internal/ai/client.go

// Package ai wraps the generative-text service that produces per-repository
// analyses, including validation of the model's structured output.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	custom_errors "gitdiscover-collector/internal/errors"
	"gitdiscover-collector/internal/model"
)

const (
	analysisModel  = openai.GPT4oMini
	analysisTemp   = 0.4
	requestTimeout = 60 * time.Second

	systemPrompt = "You are an expert open-source analyst. Return strictly-valid JSON only. No markdown. No extra text."
)

// RepoContext is the payload describing one repository to the model.
type RepoContext struct {
	FullName       string   `json:"repo"`
	Description    *string  `json:"description"`
	Language       *string  `json:"language"`
	Topics         []string `json:"topics"`
	Stars          int      `json:"stars"`
	Forks          int      `json:"forks"`
	StarsGrowth24h int      `json:"starsGrowth24h"`
	ForksGrowth24h int      `json:"forksGrowth24h"`
	Score          float64  `json:"score"`
}

// Client calls the chat-completions API and validates its output.
type Client struct {
	oa     *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &Client{
		oa:     openai.NewClientWithConfig(cfg),
		model:  analysisModel,
		logger: logger,
	}
}

// Analyze requests an analysis for one repository. A transport error or a
// response that does not match the expected schema is returned as an error;
// missing optional fields are defaulted, not rejected.
func (c *Client) Analyze(ctx context.Context, rc RepoContext) (*model.Analysis, error) {
	contextJSON, err := json.Marshal(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode repository context: %w", err)
	}

	userPrompt := "Analyze why this repository is trending and provide actionable insight.\n" +
		"Return JSON with keys: summary (string, 1-2 sentences), highlights (string[]), useCases (string[]), " +
		"techStack (object|null), codeQuality (object|null), targetAudience (string|null).\n" +
		"Repository context: " + string(contextJSON)

	resp, err := c.oa.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: analysisTemp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed for %s: %w", rc.FullName, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &custom_errors.ErrMalformedAnalysis{Reason: "response contains no choices"}
	}

	analysis, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	analysis.ModelVersion = c.model
	analysis.TokensUsed = resp.Usage.TotalTokens

	c.logger.Debug("Generated analysis", "repo", rc.FullName, "tokens", analysis.TokensUsed)
	return analysis, nil
}

// rawAnalysis mirrors the fixed output schema. TechStack and CodeQuality stay
// raw because their shape is model-generated.
type rawAnalysis struct {
	Summary        string          `json:"summary"`
	Highlights     []string        `json:"highlights"`
	UseCases       []string        `json:"useCases"`
	TechStack      json.RawMessage `json:"techStack"`
	CodeQuality    json.RawMessage `json:"codeQuality"`
	TargetAudience *string         `json:"targetAudience"`
}

func parseAnalysis(content string) (*model.Analysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &custom_errors.ErrMalformedAnalysis{Reason: err.Error()}
	}

	analysis := &model.Analysis{
		Summary:        raw.Summary,
		Highlights:     raw.Highlights,
		UseCases:       raw.UseCases,
		TechStack:      jsonObjectOrNil(raw.TechStack),
		CodeQuality:    jsonObjectOrNil(raw.CodeQuality),
		TargetAudience: raw.TargetAudience,
	}
	if analysis.Highlights == nil {
		analysis.Highlights = []string{}
	}
	if analysis.UseCases == nil {
		analysis.UseCases = []string{}
	}

	return analysis, nil
}

// jsonObjectOrNil keeps a value only when it is a JSON object; anything else
// (null, arrays, scalars) defaults to nil.
func jsonObjectOrNil(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	return raw
}
