/**
* Name: 			tutor.go
* Description: 		대화 기록과 새 메시지를 벤더 요청으로 변환하고 결과를 하나의 문자열로 정규화
* Workflow: 		시스템 지시문 생성, 기록 윈도우 적용, 현재 턴 구성, 단일 호출, 결과 정규화
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GelezaSmart/internal/models"

	"go.uber.org/zap"
)

const (
	FallbackEmpty = "I solved it in my head but couldn't write it down! 😅 Can you ask again?"
	FallbackError = "My brain circuits are overheating! 🤯 I couldn't process that right now. Please try again in a moment or try a simpler question."

	DefaultImagePrompt   = "Please help me with this image."
	ImageUnsupportedNote = "\n\n(I can see you attached an image, but I can't look at pictures right now. Please type the problem out for me!)"

	DefaultHistoryWindow = 20
)

var ErrPanic = errors.New("generator panicked")

// Generator is one vendor variant: exactly one remote call per Generate.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Failure int

const (
	FailureNone Failure = iota
	FailureEmpty
	FailureService
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureEmpty:
		return "empty"
	case FailureService:
		return "service"
	default:
		return "unknown"
	}
}

// Result is the categorized outcome; Text is always safe to show.
type Result struct {
	Text    string
	Failure Failure
	Err     error
}

type Options struct {
	// HistoryWindow keeps only the last N turns of history; 0 sends everything.
	HistoryWindow int
	// Vision is false for variants that cannot accept image turns.
	Vision bool
	// Timeout bounds the remote call; 0 disables it.
	Timeout time.Duration
}

type Tutor struct {
	gen    Generator
	opts   Options
	logger *zap.Logger
}

func NewTutor(gen Generator, opts Options, logger *zap.Logger) *Tutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HistoryWindow < 0 {
		opts.HistoryWindow = 0
	}
	return &Tutor{gen: gen, opts: opts, logger: logger}
}

func (t *Tutor) Vision() bool {
	return t.opts.Vision
}

// BuildRequest maps the conversation onto the vendor-neutral request.
func (t *Tutor) BuildRequest(history []models.ChatMessage, newText, newImage string, profile models.UserProfile) Request {
	if n := t.opts.HistoryWindow; n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}

	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		role := RoleUser
		if m.Role == models.RoleModel {
			role = RoleAssistant
		}
		// 이전 턴의 이미지는 전송하지 않음
		turns = append(turns, Turn{Role: role, Content: TextContent{Text: m.Text}})
	}

	return Request{
		System:  SystemInstruction(profile),
		History: turns,
		Current: Turn{Role: RoleUser, Content: t.currentContent(newText, newImage)},
	}
}

func (t *Tutor) currentContent(text, image string) Content {
	if strings.TrimSpace(image) == "" {
		return TextContent{Text: text}
	}
	if !t.opts.Vision {
		return TextContent{Text: text + ImageUnsupportedNote}
	}
	if strings.TrimSpace(text) == "" {
		text = DefaultImagePrompt
	}
	return ImageContent{Text: text, Image: ParseDataURI(image)}
}

// Generate performs one remote call and categorizes the outcome. It never panics.
func (t *Tutor) Generate(ctx context.Context, history []models.ChatMessage, newText, newImage string, profile models.UserProfile) Result {
	req := t.BuildRequest(history, newText, newImage, profile)

	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := t.call(ctx, req)
	log := t.logger.With(
		zap.String("uid", profile.UID),
		zap.Int("history_turns", len(req.History)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err != nil {
		log.Error("Generate(): remote generation failed", zap.Error(err))
		return Result{Text: FallbackError, Failure: FailureService, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("Generate(): remote generation returned empty text")
		return Result{Text: FallbackEmpty, Failure: FailureEmpty}
	}
	log.Debug("Generate(): remote generation succeeded", zap.Int("chars", len(text)))
	return Result{Text: text}
}

// Respond is Generate reduced to the user-facing string.
func (t *Tutor) Respond(ctx context.Context, history []models.ChatMessage, newText, newImage string, profile models.UserProfile) string {
	return t.Generate(ctx, history, newText, newImage, profile).Text
}

func (t *Tutor) call(ctx context.Context, req Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return t.gen.Generate(ctx, req)
}
