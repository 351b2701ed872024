// Package openai implements ports.Extractor against any OpenAI-compatible
// chat completion endpoint, including local servers such as LM Studio or
// Ollama.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/clarita-pm/clarita/pkg/domain"
)

const extractSystemPrompt = `You are a helpful assistant that extracts structured information from feature requests.

Given a user request, identify and extract the following information:
- target_page: Which page the feature should be added to
- feature_type: What type of feature (button, form, field, link, component, etc.)
- action: What should happen when the feature is used (save, refresh, submit, navigate, etc.)

If information is missing, use null.

Examples:
Input: "Add a save button to the dashboard page"
Output: {"target_page": "dashboard", "feature_type": "button", "action": "save"}

Input: "Create a contact form on the about page"
Output: {"target_page": "about", "feature_type": "form", "action": "submit"}

Input: "Let's add a button to this page"
Output: {"target_page": null, "feature_type": "button", "action": null}`

const validateSystemPrompt = `You review structured feature requests and decide whether enough information exists to plan implementation work.

A request is sufficient when both target_page and feature_type are known. Respond with JSON only:
{"sufficient": true|false, "missing": ["field", ...], "questions": ["question for the user", ...]}

Ask at most three short, concrete questions, one per missing field.`

// Config holds connection settings for the extractor.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Extractor implements ports.Extractor using chat completions.
type Extractor struct {
	client *openai.Client
	model  string
}

// New creates an extractor from the given config. An empty BaseURL uses
// the default OpenAI endpoint.
func New(cfg Config) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	clientCfg.HTTPClient = httpClient

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &Extractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Extract asks the model to pull structured fields out of free text.
func (e *Extractor) Extract(ctx context.Context, text string) (domain.FieldSet, error) {
	raw, err := e.complete(ctx, extractSystemPrompt, text)
	if err != nil {
		return domain.FieldSet{}, err
	}

	var out struct {
		TargetPage  *string `json:"target_page"`
		FeatureType *string `json:"feature_type"`
		Action      *string `json:"action"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return domain.FieldSet{}, fmt.Errorf("decode extraction response: %w", err)
	}

	fields := domain.FieldSet{RawText: text}
	if out.TargetPage != nil {
		fields.TargetPage = strings.ToLower(strings.TrimSpace(*out.TargetPage))
	}
	if out.FeatureType != nil {
		fields.FeatureType = strings.ToLower(strings.TrimSpace(*out.FeatureType))
	}
	if out.Action != nil {
		fields.Action = strings.ToLower(strings.TrimSpace(*out.Action))
	}
	return fields, nil
}

// Validate asks the model whether the extracted fields are enough to
// proceed and, if not, which questions to put to the user.
func (e *Extractor) Validate(ctx context.Context, text string, fields domain.FieldSet) (domain.Validation, error) {
	input := fmt.Sprintf("Request: %s\nExtracted: {\"target_page\": %s, \"feature_type\": %s, \"action\": %s}",
		text, jsonOrNull(fields.TargetPage), jsonOrNull(fields.FeatureType), jsonOrNull(fields.Action))

	raw, err := e.complete(ctx, validateSystemPrompt, input)
	if err != nil {
		return domain.Validation{}, err
	}

	var out domain.Validation
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return domain.Validation{}, fmt.Errorf("decode validation response: %w", err)
	}
	return out, nil
}

func (e *Extractor) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripFences removes a markdown code fence that some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func jsonOrNull(s string) string {
	if s == "" {
		return "null"
	}
	b, _ := json.Marshal(s)
	return string(b)
}
