package handler

import (
	"errors"
	"io"
	"net/http"

	"GelezaSmart/internal/middleware"
	"GelezaSmart/internal/tutor"
	"GelezaSmart/internal/voice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAudioBytes = 10 << 20

type VoiceResponse struct {
	Transcript string `json:"transcript" example:"what is seven times eight"`
	tutor.Exchange
}

// SendVoice godoc
// @Summary      음성 질문 (Voice)
// @Description  녹음(WEBM/Opus)을 텍스트로 변환한 뒤 일반 메시지처럼 전송합니다.
// @Tags         Voice
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        audio formData file true "녹음 파일"
// @Success      200 {object} handler.VoiceResponse
// @Failure      400 {object} handler.ErrorResponse "녹음 누락 또는 인식 실패"
// @Failure      409 {object} handler.ErrorResponse "이전 요청 처리 중"
// @Failure      503 {object} handler.ErrorResponse "음성 기능 비활성화"
// @Router       /api/voice [post]
func (h *Handler) SendVoice(c *gin.Context) {
	if h.transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Voice is not enabled"})
		return
	}
	uid := middleware.UID(c)

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is required"})
		return
	}
	if fh.Size > maxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Recording is too long"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is unreadable"})
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(io.LimitReader(f, maxAudioBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is unreadable"})
		return
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), audio)
	if err != nil {
		if errors.Is(err, voice.ErrNoSpeech) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "I couldn't hear anything, please try again!"})
			return
		}
		h.logger.Error("SendVoice(): transcription failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to understand the recording"})
		return
	}

	ex, err := h.svc.Send(c.Request.Context(), uid, transcript, "")
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, VoiceResponse{Transcript: transcript, Exchange: ex})
}
