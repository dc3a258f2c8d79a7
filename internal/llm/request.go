package llm

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
)

// DefaultImageMediaType is used when a data-URI header is missing or unparseable.
const DefaultImageMediaType = "image/jpeg"

// Role is the vendor-neutral speaker label of an outbound turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content is either TextContent or ImageContent.
type Content interface {
	isContent()
	// PlainText returns the text part of the content.
	PlainText() string
}

type TextContent struct {
	Text string
}

type ImageContent struct {
	Text  string
	Image InlineImage
}

func (TextContent) isContent()  {}
func (ImageContent) isContent() {}

func (c TextContent) PlainText() string  { return c.Text }
func (c ImageContent) PlainText() string { return c.Text }

// InlineImage is a base64 payload with its declared media type.
type InlineImage struct {
	MediaType string
	Data      string
}

// DataURI re-encodes the image as a data URI.
func (i InlineImage) DataURI() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}

// Bytes decodes the base64 payload.
func (i InlineImage) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(i.Data)
	if err != nil {
		return nil, fmt.Errorf("decode inline image: %w", err)
	}
	return b, nil
}

type Turn struct {
	Role    Role
	Content Content
}

// Request is the one outbound call: a system directive, a text-only transcript, and the current turn.
type Request struct {
	System  string
	History []Turn
	Current Turn
}

// ParseDataURI splits "data:<type>;base64,<payload>" into media type and payload.
// A missing or broken header yields the whole input as payload with DefaultImageMediaType.
func ParseDataURI(s string) InlineImage {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return InlineImage{MediaType: DefaultImageMediaType, Data: s}
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return InlineImage{MediaType: DefaultImageMediaType, Data: s}
	}

	mediaType := DefaultImageMediaType
	if parsed, _, err := mime.ParseMediaType(strings.TrimSuffix(header, ";base64")); err == nil && strings.Contains(parsed, "/") {
		mediaType = parsed
	}
	return InlineImage{MediaType: mediaType, Data: payload}
}
