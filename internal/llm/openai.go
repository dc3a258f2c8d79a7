package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "llama-3.2-90b-vision-preview"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion API (Groq, OpenAI).
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int
}

// NewOpenAIClient builds the SDK client; an empty baseURL keeps the SDK default.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(cfg)
}

func NewOpenAIGenerator(client *openai.Client, model string) *OpenAIGenerator {
	if model == "" {
		model = DefaultGroqModel
	}
	return &OpenAIGenerator{
		client:      client,
		model:       model,
		temperature: 0.6,
		topP:        1,
		maxTokens:   1024,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	completion, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    buildOpenAIMessages(req),
		Temperature: g.temperature,
		TopP:        g.topP,
		MaxTokens:   g.maxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, turn := range req.History {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openAIRole(turn.Role),
			Content: turn.Content.PlainText(),
		})
	}

	current := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	switch c := req.Current.Content.(type) {
	case ImageContent:
		current.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: c.Text},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    c.Image.DataURI(),
					Detail: openai.ImageURLDetailAuto,
				},
			},
		}
	case TextContent:
		current.Content = c.Text
	}
	return append(msgs, current)
}

func openAIRole(r Role) string {
	if r == RoleAssistant {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}
