/**
* Name: 			store.go
* Description: 		세션별 대화 기록과 단일 요청 플래그 관리
* Workflow: 		사용자 메시지 추가 -> 요청 시작 -> 모델 메시지 추가 -> 요청 종료
 */

package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"GelezaSmart/internal/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrRequestInFlight = errors.New("a request is already in flight")
	ErrNoProfile       = errors.New("no user profile")
	ErrDuplicateID     = errors.New("duplicate message id")
)

// Store is an in-memory, append-only conversation log plus a single-flight gate.
type Store struct {
	mu         sync.Mutex
	messages   []models.ChatMessage
	ids        map[string]struct{}
	processing bool
	profile    *models.UserProfile
	lastTS     int64

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the message id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:   make(map[string]struct{}),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach binds the session profile. User input is rejected until a profile is attached.
func (s *Store) Attach(profile models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := profile
	s.profile = &p
}

func (s *Store) Profile() (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return *s.profile, true
}

func (s *Store) AppendUserMessage(text, image string) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUserInput(text); err != nil {
		return models.ChatMessage{}, err
	}
	return s.appendLocked(models.RoleUser, text, image)
}

// AppendModelMessage always appends; the caller has finished a generation attempt.
func (s *Store) AppendModelMessage(text string) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, _ := s.appendLocked(models.RoleModel, text, "")
	return msg
}

func (s *Store) BeginRequest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return ErrRequestInFlight
	}
	s.processing = true
	return nil
}

func (s *Store) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
}

// Submit appends a user turn and raises the in-flight flag as one step.
// history is the transcript as it was before the new turn.
func (s *Store) Submit(text, image string) (msg models.ChatMessage, history []models.ChatMessage, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUserInput(text); err != nil {
		return models.ChatMessage{}, nil, err
	}
	history = s.snapshotLocked()
	msg, err = s.appendLocked(models.RoleUser, text, image)
	if err != nil {
		return models.ChatMessage{}, nil, err
	}
	s.processing = true
	return msg, history, nil
}

// Complete appends the model turn and clears the in-flight flag as one step.
// It reports false and appends nothing when a Reset abandoned the request.
func (s *Store) Complete(text string) (models.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.processing {
		return models.ChatMessage{}, false
	}
	msg, _ := s.appendLocked(models.RoleModel, text, "")
	s.processing = false
	return msg, true
}

func (s *Store) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// Reset clears the history, the in-flight flag and the attached profile.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.ids = make(map[string]struct{})
	s.processing = false
	s.profile = nil
	s.lastTS = 0
}

// List returns a snapshot; callers may not mutate the store through it.
func (s *Store) List() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *Store) checkUserInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if s.processing {
		return ErrRequestInFlight
	}
	if s.profile == nil {
		return ErrNoProfile
	}
	return nil
}

func (s *Store) appendLocked(role models.Role, text, image string) (models.ChatMessage, error) {
	id := s.newID()
	if _, exists := s.ids[id]; exists {
		if role == models.RoleUser {
			return models.ChatMessage{}, ErrDuplicateID
		}
		// model turns must never be dropped
		id = uuid.NewString()
	}

	// 타임스탬프는 추가 순서대로 감소하지 않아야 함
	ts := s.now().UnixMilli()
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts

	msg := models.ChatMessage{
		ID:        id,
		Role:      role,
		Text:      text,
		Timestamp: ts,
	}
	if role == models.RoleUser {
		msg.ImageURL = image
	}
	s.ids[id] = struct{}{}
	s.messages = append(s.messages, msg)
	return msg, nil
}
