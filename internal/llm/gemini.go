package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini API client. baseURL is only set in tests.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client, nil
}

func NewGeminiGenerator(client *genai.Client, modelName string) *GeminiGenerator {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, modelName: modelName}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	contents, err := buildGeminiContents(req)
	if err != nil {
		return "", err
	}

	temp := float32(0.6)
	topP := float32(1)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(1024),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}

func buildGeminiContents(req Request) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Content.PlainText(), geminiRole(turn.Role)))
	}

	switch c := req.Current.Content.(type) {
	case ImageContent:
		data, err := c.Image.Bytes()
		if err != nil {
			return nil, err
		}
		contents = append(contents, genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(c.Text),
			genai.NewPartFromBytes(data, c.Image.MediaType),
		}, genai.RoleUser))
	case TextContent:
		contents = append(contents, genai.NewContentFromText(c.Text, genai.RoleUser))
	}
	return contents, nil
}

func geminiRole(r Role) genai.Role {
	if r == RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
