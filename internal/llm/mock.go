package llm

import (
	"context"
	"fmt"
)

// MockGenerator answers without any network access. Used for local development.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := req.Current.Content.PlainText()
	if _, ok := req.Current.Content.(ImageContent); ok {
		text += " (with a photo)"
	}
	return fmt.Sprintf("Let's solve it together! 🌟\n\n1. **Read** the question: %s\n2. **Think** about what we already know.\n3. **Solve** it one step at a time.\n\n(We have talked %d times so far.)", text, len(req.History)), nil
}
