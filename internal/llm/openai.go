package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultAPIURL = "https://api.openai.com/v1"

// OpenAIProvider implements Provider using the OpenAI chat completions API.
type OpenAIProvider struct {
	client       openai.Client
	defaultModel string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	apiKey := strings.TrimSpace(config.OpenAIAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	apiURL := config.OpenAIURL
	if apiURL == "" {
		apiURL = openAIDefaultAPIURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(apiURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultRequestTimeout}),
		option.WithMaxRetries(0),
	)

	return &OpenAIProvider{
		client:       client,
		defaultModel: config.GetModel(),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return string(ProviderOpenAI)
}

// Complete sends a non-streaming chat completion request.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	params, err := p.buildChatParams(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Message: "no choices in response"}
	}

	out := &Response{Model: resp.Model, Choices: make([]Choice, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, Choice{Content: choice.Message.Content})
	}
	return out, nil
}

func (p *OpenAIProvider) buildChatParams(req Request) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = p.defaultModel
	}
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	return params, nil
}

func toChatMessageParam(msg Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch strings.ToLower(strings.TrimSpace(msg.Role)) {
	case RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case RoleUser:
		return openai.UserMessage(msg.Content), nil
	case "assistant":
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}

var _ Provider = (*OpenAIProvider)(nil)
