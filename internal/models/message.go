package models

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// 채팅 한 턴, 생성 후 수정되지 않음
type ChatMessage struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
