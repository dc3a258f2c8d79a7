/**
* Name: 			service.go
* Description: 		온보딩, 대화 세션, 튜터 응답 흐름 관리
* Workflow: 		온보딩 -> 세션 생성 -> 메시지 전송 -> 응답 기록 -> 리셋
 */

package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GelezaSmart/internal/chat"
	"GelezaSmart/internal/llm"
	"GelezaSmart/internal/models"
	"GelezaSmart/internal/storage"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const DefaultSessionTTL = 24 * time.Hour

var ErrInvalidOnboarding = errors.New("invalid onboarding data")

type Responder interface {
	Generate(ctx context.Context, history []models.ChatMessage, newText, newImage string, profile models.UserProfile) llm.Result
}

type Session struct {
	Profile    models.UserProfile   `json:"profile"`
	Messages   []models.ChatMessage `json:"messages"`
	Processing bool                 `json:"processing"`
}

// Exchange is one completed send: the stored user turn and the tutor reply.
type Exchange struct {
	User    models.ChatMessage `json:"user"`
	Reply   models.ChatMessage `json:"reply"`
	Failure llm.Failure        `json:"-"`
}

type Service struct {
	profiles storage.ProfileStore
	tutor    Responder
	sessions *cache.Cache
	logger   *zap.Logger
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessions = cache.New(ttl, ttl/2)
		}
	}
}

func NewService(profiles storage.ProfileStore, tutor Responder, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		profiles: profiles,
		tutor:    tutor,
		sessions: cache.New(DefaultSessionTTL, DefaultSessionTTL/2),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Greeting is the first tutor message right after onboarding.
func Greeting(d models.OnboardingData) string {
	return fmt.Sprintf("Hey there! I'm Geleza Smart, your new math buddy! 🎓✨ \n\nI see you like **%s** and want to be a **%s**! That is so cool! 🤩\n\nAsk me a question, and let's crush some math problems together!",
		d.FavoredCelebrity, d.DreamJob)
}

// Onboard creates and persists a profile and opens a session whose
// transcript holds exactly the greeting.
func (s *Service) Onboard(ctx context.Context, data models.OnboardingData) (Session, error) {
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidOnboarding, err)
	}

	profile := models.NewUserProfile(data)
	if err := s.profiles.Save(ctx, profile); err != nil {
		s.logger.Error("Onboard(): failed to save profile", zap.String("uid", profile.UID), zap.Error(err))
		return Session{}, err
	}

	store := s.newStore(profile)
	store.AppendModelMessage(Greeting(data))
	s.sessions.Set(profile.UID, store, cache.DefaultExpiration)

	s.logger.Info("Onboard(): profile created", zap.String("uid", profile.UID))
	return snapshot(profile, store), nil
}

// Restore loads the session for uid, opening an empty one from the
// persisted profile if needed. storage.ErrProfileNotFound means the student
// must onboard.
func (s *Service) Restore(ctx context.Context, uid string) (Session, error) {
	store, err := s.session(ctx, uid)
	if err != nil {
		return Session{}, err
	}
	profile, ok := store.Profile()
	if !ok {
		return Session{}, storage.ErrProfileNotFound
	}
	return snapshot(profile, store), nil
}

// Send records the student's turn, asks the tutor and records the reply.
// Input rejections (chat.ErrEmptyMessage, chat.ErrRequestInFlight,
// chat.ErrNoProfile) leave the transcript untouched. Generation failures are
// not errors: the reply carries the fallback text.
func (s *Service) Send(ctx context.Context, uid, text, image string) (Exchange, error) {
	store, err := s.session(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			return Exchange{}, chat.ErrNoProfile
		}
		return Exchange{}, err
	}

	// Submit 이후 Reset되어도 사용할 수 있도록 먼저 읽어 둠
	profile, _ := store.Profile()
	userMsg, history, err := store.Submit(text, image)
	if err != nil {
		s.logger.Debug("Send(): input rejected", zap.String("uid", uid), zap.Error(err))
		return Exchange{}, err
	}
	s.touch(uid, store)

	res := s.tutor.Generate(context.WithoutCancel(ctx), history, text, image, profile)
	reply, ok := store.Complete(res.Text)
	if !ok {
		s.logger.Info("Send(): session was reset before the reply arrived", zap.String("uid", uid))
		return Exchange{}, chat.ErrNoProfile
	}

	return Exchange{User: userMsg, Reply: reply, Failure: res.Failure}, nil
}

func (s *Service) History(ctx context.Context, uid string) ([]models.ChatMessage, error) {
	store, err := s.session(ctx, uid)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

func (s *Service) Processing(uid string) bool {
	if v, ok := s.sessions.Get(uid); ok {
		return v.(*chat.Store).Processing()
	}
	return false
}

// Message finds a single message in the live transcript.
func (s *Service) Message(ctx context.Context, uid, id string) (models.ChatMessage, bool) {
	history, err := s.History(ctx, uid)
	if err != nil {
		return models.ChatMessage{}, false
	}
	for _, m := range history {
		if m.ID == id {
			return m, true
		}
	}
	return models.ChatMessage{}, false
}

// Reset deletes the stored profile and discards the transcript.
func (s *Service) Reset(ctx context.Context, uid string) error {
	if v, ok := s.sessions.Get(uid); ok {
		v.(*chat.Store).Reset()
	}
	s.sessions.Delete(uid)
	if err := s.profiles.Delete(ctx, uid); err != nil {
		s.logger.Error("Reset(): failed to delete profile", zap.String("uid", uid), zap.Error(err))
		return err
	}
	s.logger.Info("Reset(): profile removed", zap.String("uid", uid))
	return nil
}

func (s *Service) session(ctx context.Context, uid string) (*chat.Store, error) {
	if v, ok := s.sessions.Get(uid); ok {
		return v.(*chat.Store), nil
	}

	profile, err := s.profiles.Load(ctx, uid)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			s.logger.Error("session(): failed to load profile", zap.String("uid", uid), zap.Error(err))
		}
		return nil, err
	}

	store := s.newStore(profile)
	// 동시에 복원된 경우 먼저 등록된 세션 사용
	if err := s.sessions.Add(uid, store, cache.DefaultExpiration); err != nil {
		if v, ok := s.sessions.Get(uid); ok {
			return v.(*chat.Store), nil
		}
		s.sessions.Set(uid, store, cache.DefaultExpiration)
	}
	return store, nil
}

// touch extends the session lifetime unless it was replaced or removed.
func (s *Service) touch(uid string, store *chat.Store) {
	if v, ok := s.sessions.Get(uid); ok && v.(*chat.Store) == store {
		s.sessions.Set(uid, store, cache.DefaultExpiration)
	}
}

func (s *Service) newStore(profile models.UserProfile) *chat.Store {
	store := chat.NewStore()
	store.Attach(profile)
	return store
}

func snapshot(profile models.UserProfile, store *chat.Store) Session {
	return Session{Profile: profile, Messages: store.List(), Processing: store.Processing()}
}
