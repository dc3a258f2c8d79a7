package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = anthropic.ModelClaude3_7SonnetLatest

// conversationOpener is sent ahead of a transcript that opens with a tutor turn.
// The Messages API requires the first message to have the user role.
const conversationOpener = "Hi!"

type AnthropicGenerator struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAnthropicClient(apiKey, baseURL string, httpClient *http.Client) *anthropic.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	c := anthropic.NewClient(opts...)
	return &c
}

func NewAnthropicGenerator(client *anthropic.Client, model string) *AnthropicGenerator {
	m := DefaultAnthropicModel
	if model != "" {
		m = anthropic.Model(model)
	}
	return &AnthropicGenerator{client: client, model: m, maxTokens: 1024}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages:    buildAnthropicMessages(req),
		Temperature: anthropic.Float(0.6),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String(), nil
}

func buildAnthropicMessages(req Request) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(req.History)+2)
	if len(req.History) > 0 && req.History[0].Role == RoleAssistant {
		msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(conversationOpener)))
	}
	for _, turn := range req.History {
		block := anthropic.NewTextBlock(turn.Content.PlainText())
		if turn.Role == RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}

	switch c := req.Current.Content.(type) {
	case ImageContent:
		msgs = append(msgs, anthropic.NewUserMessage(
			anthropic.NewTextBlock(c.Text),
			anthropic.NewImageBlockBase64(c.Image.MediaType, c.Image.Data),
		))
	case TextContent:
		msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(c.Text)))
	}
	return msgs
}
