package handler

import (
	"net/http"

	"GelezaSmart/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	frameMessage    = "message"
	frameProcessing = "processing"
	frameRejected   = "rejected"
)

// 클라이언트 -> 서버
type clientFrame struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// 서버 -> 클라이언트
type serverFrame struct {
	Type    string              `json:"type"`
	Message *models.ChatMessage `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// HandleChatConnection godoc
// @Summary      실시간 채팅 WebSocket 연결
// @Description  튜터와 실시간으로 대화하기 위한 WebSocket 연결을 시작합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Description  연결 직후 기존 대화 기록이 `message` 프레임으로 전송됩니다.
// @Tags         WebSocket (Chat)
// @Param        token    query     string  true  "온보딩 시 발급받은 JWT 토큰"
// @Success      101      {string}  string  "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      404      {object}  handler.ErrorResponse "프로필 없음"
// @Router       /ws/chat [get]
func (h *Handler) HandleChatConnection(c *gin.Context) {
	uid, err := h.tokens.Validate(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	sess, err := h.svc.Restore(c.Request.Context(), uid)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("HandleChatConnection(): failed to upgrade to WebSocket", zap.String("uid", uid), zap.Error(err))
		return
	}
	defer conn.Close()
	h.logger.Info("WebSocket connection established", zap.String("uid", uid))

	for i := range sess.Messages {
		if err := conn.WriteJSON(serverFrame{Type: frameMessage, Message: &sess.Messages[i]}); err != nil {
			h.logger.Warn("HandleChatConnection(): failed to send history", zap.String("uid", uid), zap.Error(err))
			return
		}
	}

	h.manageChatSession(c.Request.Context(), conn, uid)
}
