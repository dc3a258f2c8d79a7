/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 구성
* Workflow: 		의존성 주입, 에러 -> HTTP 상태 변환
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"GelezaSmart/internal/capture"
	"GelezaSmart/internal/chat"
	"GelezaSmart/internal/storage"
	"GelezaSmart/internal/tutor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Tokens interface {
	Generate(uid string) (string, error)
	Validate(token string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type Narrator interface {
	Narrate(ctx context.Context, text string) ([]byte, error)
}

type Handler struct {
	svc           *tutor.Service
	tokens        Tokens
	transcriber   Transcriber
	narrator      Narrator
	imageMaxBytes int64
	logger        *zap.Logger
}

type Option func(*Handler)

// WithVoice enables the speech endpoints.
func WithVoice(t Transcriber, n Narrator) Option {
	return func(h *Handler) {
		h.transcriber = t
		h.narrator = n
	}
}

func WithImageMaxBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.imageMaxBytes = n
		}
	}
}

func New(svc *tutor.Service, tokens Tokens, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		svc:           svc,
		tokens:        tokens,
		imageMaxBytes: capture.DefaultMaxBytes,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var errBadBody = errors.New("invalid request body")

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// errorStatus maps domain errors to a status and a student friendly message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest, "Please type your math question first!"
	case errors.Is(err, chat.ErrRequestInFlight):
		return http.StatusConflict, "request already in flight"
	case errors.Is(err, chat.ErrNoProfile), errors.Is(err, storage.ErrProfileNotFound):
		return http.StatusNotFound, "Profile not found, please complete onboarding"
	case errors.Is(err, tutor.ErrInvalidOnboarding):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, capture.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "That picture is too big, please try a smaller one"
	case errors.Is(err, capture.ErrNotImage), errors.Is(err, capture.ErrBadImage):
		return http.StatusBadRequest, "That attachment doesn't look like a picture"
	}
	return http.StatusInternalServerError, "internal server error"
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Healthz godoc
// @Summary      헬스 체크 (Healthz)
// @Tags         System
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
