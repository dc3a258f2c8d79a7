package chat_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"GelezaSmart/internal/chat"
	"GelezaSmart/internal/models"
)

func newStoreWithProfile(opts ...chat.Option) *chat.Store {
	s := chat.NewStore(opts...)
	s.Attach(models.UserProfile{UID: "demo-user-1", DisplayName: "Student", IsProfileComplete: true})
	return s
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newStoreWithProfile()
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			if _, err := s.AppendUserMessage(fmt.Sprintf("msg %d", i), ""); err != nil {
				t.Fatalf("AppendUserMessage(%d) failed: %v", i, err)
			}
		} else {
			s.AppendModelMessage(fmt.Sprintf("msg %d", i))
		}
	}

	got := s.List()
	if len(got) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(got))
	}
	seen := map[string]bool{}
	for i, m := range got {
		if m.Text != fmt.Sprintf("msg %d", i) {
			t.Fatalf("message %d out of order: %q", i, m.Text)
		}
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
		if i > 0 && m.Timestamp < got[i-1].Timestamp {
			t.Fatalf("timestamp decreased at %d", i)
		}
	}
}

func TestAppendUserMessageRejections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := newStoreWithProfile()
		for _, text := range []string{"", "   ", "\n\t"} {
			if _, err := s.AppendUserMessage(text, ""); !errors.Is(err, chat.ErrEmptyMessage) {
				t.Fatalf("expected ErrEmptyMessage for %q, got %v", text, err)
			}
		}
		if s.Len() != 0 {
			t.Fatalf("expected no messages")
		}
	})

	t.Run("no profile", func(t *testing.T) {
		s := chat.NewStore()
		if _, err := s.AppendUserMessage("what is 2+2?", ""); !errors.Is(err, chat.ErrNoProfile) {
			t.Fatalf("expected ErrNoProfile, got %v", err)
		}
	})

	t.Run("in flight", func(t *testing.T) {
		s := newStoreWithProfile()
		if err := s.BeginRequest(); err != nil {
			t.Fatalf("BeginRequest failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := s.AppendUserMessage("again?", ""); !errors.Is(err, chat.ErrRequestInFlight) {
				t.Fatalf("expected ErrRequestInFlight, got %v", err)
			}
		}
		if s.Len() != 0 {
			t.Fatalf("expected nothing appended while in flight, got %d", s.Len())
		}
		s.EndRequest()
		if _, err := s.AppendUserMessage("again?", ""); err != nil {
			t.Fatalf("expected append after EndRequest, got %v", err)
		}
	})
}

func TestBeginRequestTwiceFails(t *testing.T) {
	s := newStoreWithProfile()
	if err := s.BeginRequest(); err != nil {
		t.Fatalf("first BeginRequest failed: %v", err)
	}
	if err := s.BeginRequest(); !errors.Is(err, chat.ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}
}

func TestSubmitIsSingleFlight(t *testing.T) {
	s := newStoreWithProfile()

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.Submit("solve x+1=2", ""); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Fatalf("expected exactly one accepted submit, got %d", accepted)
	}
	if !s.Processing() {
		t.Fatalf("expected processing flag after submit")
	}

	s.Complete("x = 1")
	if s.Processing() {
		t.Fatalf("expected processing flag cleared after complete")
	}
	msgs := s.List()
	if len(msgs) != 2 || msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleModel {
		t.Fatalf("unexpected history %+v", msgs)
	}
}

func TestImageOnlyKeptOnUserTurns(t *testing.T) {
	s := newStoreWithProfile()
	u, err := s.AppendUserMessage("what is this angle?", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if u.ImageURL == "" {
		t.Fatalf("expected image on user turn")
	}
	m := s.AppendModelMessage("It is 90 degrees.")
	if m.ImageURL != "" {
		t.Fatalf("model turns never carry images")
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	base := time.UnixMilli(10_000)
	ticks := []time.Time{base, base.Add(-5 * time.Second), base.Add(time.Second)}
	i := 0
	s := newStoreWithProfile(chat.WithClock(func() time.Time {
		ts := ticks[i%len(ticks)]
		i++
		return ts
	}))

	s.AppendModelMessage("a")
	s.AppendModelMessage("b")
	s.AppendModelMessage("c")

	got := s.List()
	if got[1].Timestamp != got[0].Timestamp {
		t.Fatalf("expected clamped timestamp, got %d then %d", got[0].Timestamp, got[1].Timestamp)
	}
	if got[2].Timestamp <= got[1].Timestamp {
		t.Fatalf("expected later timestamp")
	}
}

func TestDuplicateIDRejectedForUserTurns(t *testing.T) {
	s := newStoreWithProfile(chat.WithIDGenerator(func() string { return "same" }))
	if _, err := s.AppendUserMessage("first", ""); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if _, err := s.AppendUserMessage("second", ""); !errors.Is(err, chat.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	m := s.AppendModelMessage("reply")
	if m.ID == "same" {
		t.Fatalf("model turn must get a fresh id")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", s.Len())
	}
}

func TestListIsSnapshot(t *testing.T) {
	s := newStoreWithProfile()
	s.AppendModelMessage("hello")
	snap := s.List()
	snap[0].Text = "tampered"
	if s.List()[0].Text != "hello" {
		t.Fatalf("store mutated through snapshot")
	}
}

func TestReset(t *testing.T) {
	s := newStoreWithProfile()
	if _, _, err := s.Submit("hi", ""); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	s.Reset()
	if s.Len() != 0 || s.Processing() {
		t.Fatalf("expected empty, idle store after reset")
	}
	if _, ok := s.Profile(); ok {
		t.Fatalf("expected profile detached after reset")
	}
	if _, err := s.AppendUserMessage("hi", ""); !errors.Is(err, chat.ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile after reset, got %v", err)
	}
}

func TestSubmitReturnsPriorHistory(t *testing.T) {
	s := newStoreWithProfile()
	greeting := s.AppendModelMessage("hello")

	msg, history, err := s.Submit("what is 2+2?", "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != greeting.ID {
		t.Fatalf("history should hold only the greeting, got %+v", history)
	}
	// 이후 초기화되어도 받은 기록은 그대로
	s.Reset()
	if len(history) != 1 || s.Len() != 0 {
		t.Fatalf("snapshot must not alias the store")
	}
	if msg.Role != models.RoleUser {
		t.Fatalf("expected user turn, got %s", msg.Role)
	}
}

func TestCompleteAfterResetIsDiscarded(t *testing.T) {
	s := newStoreWithProfile()
	if _, _, err := s.Submit("hi", ""); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	s.Reset()
	if _, ok := s.Complete("late answer"); ok {
		t.Fatalf("complete after reset should be discarded")
	}
	if s.Len() != 0 || s.Processing() {
		t.Fatalf("reset store must stay empty and idle")
	}
}
