/**
* Name: 			message_handler.go
* Description: 		대화 메시지 핸들러
* Workflow: 		기록 조회, 메시지 전송(텍스트/사진), 답변 음성 변환
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"GelezaSmart/internal/capture"
	"GelezaSmart/internal/middleware"
	"GelezaSmart/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SendMessageRequest struct {
	Text  string `json:"text" example:"What is 3/4 of 20?"`
	Image string `json:"image,omitempty" example:"data:image/png;base64,iVBORw0KGgo..."`
}

type MessagesResponse struct {
	Messages   []models.ChatMessage `json:"messages"`
	Processing bool                 `json:"processing"`
}

// ListMessages godoc
// @Summary      대화 기록 조회 (Messages)
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.MessagesResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse "프로필 없음"
// @Router       /api/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	uid := middleware.UID(c)
	messages, err := h.svc.History(c.Request.Context(), uid)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessagesResponse{Messages: messages, Processing: h.svc.Processing(uid)})
}

// SendMessage godoc
// @Summary      메시지 전송 (Send)
// @Description  질문을 보내고 튜터의 답변을 받습니다. JSON 또는 multipart(text, image) 모두 지원합니다.
// @Description  답변 생성 실패 시에도 200과 함께 안내 문구가 반환됩니다.
// @Tags         Chat
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.SendMessageRequest false "JSON 요청"
// @Param        text  formData string false "질문 (multipart)"
// @Param        image formData file   false "문제 사진 (multipart)"
// @Success      200 {object} tutor.Exchange
// @Failure      400 {object} handler.ErrorResponse "빈 메시지 또는 잘못된 사진"
// @Failure      404 {object} handler.ErrorResponse "프로필 없음"
// @Failure      409 {object} handler.ErrorResponse "이전 요청 처리 중"
// @Failure      413 {object} handler.ErrorResponse "사진 용량 초과"
// @Failure      429 {object} handler.ErrorResponse
// @Router       /api/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	text, image, err := h.readMessage(c)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.send(c, text, image)
}

func (h *Handler) send(c *gin.Context, text, image string) {
	ex, err := h.svc.Send(c.Request.Context(), middleware.UID(c), text, image)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

func (h *Handler) readMessage(c *gin.Context) (string, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		text := c.PostForm("text")
		fh, err := c.FormFile("image")
		if errors.Is(err, http.ErrMissingFile) {
			return text, "", nil
		}
		if err != nil {
			return "", "", errors.Join(capture.ErrBadImage, err)
		}
		image, err := capture.FromUpload(fh, h.imageMaxBytes)
		return text, image, err
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", "", errors.Join(errBadBody, err)
	}
	image, err := capture.Validate(req.Image, h.imageMaxBytes)
	return req.Text, image, err
}

// MessageAudio godoc
// @Summary      답변 음성 듣기 (Narrate)
// @Description  튜터 메시지를 MP3로 읽어 줍니다. VOICE_ENABLED일 때만 사용 가능합니다.
// @Tags         Voice
// @Produce      audio/mpeg
// @Security     BearerAuth
// @Param        id path string true "메시지 ID"
// @Success      200 {file} binary
// @Failure      404 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse "음성 기능 비활성화"
// @Router       /api/messages/{id}/audio [get]
func (h *Handler) MessageAudio(c *gin.Context) {
	if h.narrator == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Voice is not enabled"})
		return
	}
	uid := middleware.UID(c)
	msg, ok := h.svc.Message(c.Request.Context(), uid, c.Param("id"))
	if !ok || msg.Role != models.RoleModel {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Message not found"})
		return
	}

	audio, err := h.narrator.Narrate(c.Request.Context(), msg.Text)
	if err != nil {
		h.logger.Error("MessageAudio(): narration failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to read the answer aloud"})
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
