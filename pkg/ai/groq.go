package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

const providerGroq = "groq"

// GroqClient calls Groq's OpenAI-compatible API for transcription and chat
type GroqClient struct {
	apiKey             string
	baseURL            string
	transcriptionModel string
	summaryModel       string
	language           string
	temperature        float64
	maxTokens          int
	retry              RetryPolicy
	client             *http.Client
}

// GroqOption customizes a GroqClient
type GroqOption func(*GroqClient)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) GroqOption {
	return func(g *GroqClient) { g.client = c }
}

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(p RetryPolicy) GroqOption {
	return func(g *GroqClient) { g.retry = p }
}

var (
	_ Transcriber = (*GroqClient)(nil)
	_ Summarizer  = (*GroqClient)(nil)
)

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig, opts ...GroqOption) *GroqClient {
	g := &GroqClient{
		baseURL:            "https://api.groq.com",
		transcriptionModel: "whisper-large-v3",
		summaryModel:       "llama-3.1-8b-instant",
		language:           "en",
		temperature:        0.1,
		maxTokens:          2000,
		retry:              DefaultRetryPolicy(),
		client:             &http.Client{Timeout: 10 * time.Minute},
	}
	if cfg != nil {
		g.apiKey = cfg.APIKey
		if cfg.BaseURL != "" {
			g.baseURL = cfg.BaseURL
		}
		if cfg.TranscriptionModel != "" {
			g.transcriptionModel = cfg.TranscriptionModel
		}
		if cfg.SummaryModel != "" {
			g.summaryModel = cfg.SummaryModel
		}
		if cfg.Language != "" {
			g.language = cfg.Language
		}
		g.temperature = cfg.Temperature
		if cfg.MaxTokens > 0 {
			g.maxTokens = cfg.MaxTokens
		}
	}
	if g.apiKey == "" {
		g.apiKey = os.Getenv("GROQ_API_KEY")
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name identifies the provider
func (g *GroqClient) Name() string { return providerGroq }

// Model returns the chat model used for summaries
func (g *GroqClient) Model() string { return g.summaryModel }

// ChatMessage is one message in a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat constrains the completion output
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize sends the system prompt and transcript as a JSON-mode chat
// completion and returns the assistant content.
func (g *GroqClient) Summarize(ctx context.Context, systemPrompt, transcript string) (string, error) {
	reqBody := ChatRequest{
		Model: g.summaryModel,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: transcript},
		},
		Temperature:    g.temperature,
		MaxTokens:      g.maxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	return retry(ctx, g.retry, func() (string, error) {
		return g.chat(ctx, b)
	})
}

func (g *GroqClient) chat(ctx context.Context, body []byte) (string, error) {
	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling groq chat API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading groq response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Provider: providerGroq, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var cr ChatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", malformed(providerGroq, err)
	}
	if len(cr.Choices) == 0 {
		return "", malformed(providerGroq, fmt.Errorf("no choices in response"))
	}
	return cr.Choices[0].Message.Content, nil
}
