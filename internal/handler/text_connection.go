package handler

import (
	"context"
	"encoding/json"
	"strings"

	"GelezaSmart/internal/capture"
	"GelezaSmart/internal/chat"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// manageChatSession handles one frame at a time, so the socket has a single writer.
func (h *Handler) manageChatSession(ctx context.Context, conn *websocket.Conn, uid string) {
	log := h.logger.With(zap.String("uid", uid))
	log.Debug("Chat session started")
	// base64 확장분 고려
	conn.SetReadLimit(h.imageMaxBytes*2 + 64<<10)

ReadLoop:
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("Error reading message", zap.Error(err))
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			log.Debug("Unsupported message type", zap.Int("type", messageType))
			continue
		}

		if err := h.handleFrame(ctx, conn, uid, data); err != nil {
			log.Warn("Error sending message", zap.Error(err))
			break ReadLoop
		}
	}
	log.Debug("Chat session ended")
}

// handleFrame returns only write errors; rejections are reported to the client.
func (h *Handler) handleFrame(ctx context.Context, conn *websocket.Conn, uid string, data []byte) error {
	var frame clientFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return conn.WriteJSON(serverFrame{Type: frameRejected, Error: "Invalid message"})
	}

	if strings.TrimSpace(frame.Text) == "" {
		_, msg := errorStatus(chat.ErrEmptyMessage)
		return conn.WriteJSON(serverFrame{Type: frameRejected, Error: msg})
	}

	image, err := capture.Validate(frame.Image, h.imageMaxBytes)
	if err != nil {
		_, msg := errorStatus(err)
		return conn.WriteJSON(serverFrame{Type: frameRejected, Error: msg})
	}

	if err := conn.WriteJSON(serverFrame{Type: frameProcessing}); err != nil {
		return err
	}

	ex, err := h.svc.Send(ctx, uid, frame.Text, image)
	if err != nil {
		_, msg := errorStatus(err)
		return conn.WriteJSON(serverFrame{Type: frameRejected, Error: msg})
	}

	if err := conn.WriteJSON(serverFrame{Type: frameMessage, Message: &ex.User}); err != nil {
		return err
	}
	return conn.WriteJSON(serverFrame{Type: frameMessage, Message: &ex.Reply})
}
