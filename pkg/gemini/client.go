// Package gemini adapts the Google GenAI SDK to the plain text generation
// used by the counselling assistant.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Role of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation.
type Turn struct {
	Role Role
	Text string
}

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Client generates replies with a fixed model.
type Client struct {
	api   *genai.Client
	model string
}

// NewClient builds a Gemini API client for model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{api: api, model: model}, nil
}

// Generate sends the conversation with a system instruction and returns the
// model's reply text.
func (c *Client) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	resp, err := c.api.Models.GenerateContent(ctx, c.model, Contents(turns), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(system)}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Contents converts turns to SDK contents, skipping blank messages.
func Contents(turns []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		role := t.Role
		if role != RoleModel {
			role = RoleUser
		}
		out = append(out, &genai.Content{
			Role:  string(role),
			Parts: []*genai.Part{genai.NewPartFromText(t.Text)},
		})
	}
	return out
}
