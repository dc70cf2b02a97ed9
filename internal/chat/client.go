package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"SmartCampus/internal/config"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are the assistant of SPI Smart Campus, the portal of a polytechnic institute. " +
	"Answer questions about departments, admissions, notices and campus life briefly and politely."

// maxHistory bounds how many earlier turns are forwarded upstream.
const maxHistory = 10

var ErrUpstream = errors.New("chat upstream error")

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg *config.Config) *Client {
	oc := openai.DefaultConfig(cfg.Chat.APIKey)
	oc.BaseURL = cfg.Chat.URL
	oc.HTTPClient = &http.Client{Timeout: cfg.Chat.Timeout}
	return &Client{api: openai.NewClientWithConfig(oc), model: cfg.Chat.Model}
}

// Ask sends message with the tail of history and returns the reply.
func (c *Client) Ask(ctx context.Context, message string, history []Turn) (string, error) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, t := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
