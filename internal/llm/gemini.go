package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	apiKey := strings.TrimSpace(config.GeminiAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:       client,
		defaultModel: config.GetModel(),
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return string(ProviderGemini)
}

// Complete generates content for the request's messages.
// System messages become the model's system instruction; the rest are sent as text parts.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	modelName := strings.TrimSpace(req.Model)
	if modelName == "" {
		modelName = p.defaultModel
	}

	model := p.client.GenerativeModel(modelName)
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	var system []string
	var parts []genai.Part
	for _, msg := range req.Messages {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		parts = append(parts, genai.Text(msg.Content))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))}}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "failed to generate content", Cause: err}
	}

	return responseFromGemini(modelName, resp)
}

// Close releases resources held by the client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// responseFromGemini converts every candidate's text parts into a Choice
func responseFromGemini(modelName string, resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &ProviderError{Provider: string(ProviderGemini), Message: "no candidates in response"}
	}

	out := &Response{Model: modelName}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		var texts []string
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				texts = append(texts, string(text))
			}
		}
		out.Choices = append(out.Choices, Choice{Content: strings.Join(texts, "")})
	}

	if len(out.Choices) == 0 {
		return nil, &ProviderError{Provider: string(ProviderGemini), Message: "no content in response"}
	}
	return out, nil
}

var _ Provider = (*GeminiProvider)(nil)
