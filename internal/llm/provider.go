package llm

import (
	"context"
	"strings"
)

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat message sent to a provider
type Message struct {
	Role    string
	Content string
}

// Request is a chat completion request
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// JSON asks providers that support it for a JSON response body
	JSON bool
}

// Choice is a single completion candidate
type Choice struct {
	Content string
}

// Response is a normalized provider response
type Response struct {
	Model   string
	Choices []Choice
}

// Provider is the interface every remote completion backend implements.
type Provider interface {
	// Name identifies the provider in completion results and logs
	Name() string
	// Complete performs one non-streaming completion call
	Complete(ctx context.Context, req Request) (*Response, error)
}

// FirstContent returns the first choice whose content is not blank
func FirstContent(resp *Response) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, choice := range resp.Choices {
		if strings.TrimSpace(choice.Content) != "" {
			return choice.Content, true
		}
	}
	return "", false
}

// PromptMessages builds the standard system + user message pair.
// An empty system prompt is left out.
func PromptMessages(system, user string) []Message {
	messages := make([]Message, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: system})
	}
	return append(messages, Message{Role: RoleUser, Content: user})
}
