package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"GelezaSmart/internal/auth"
	"GelezaSmart/internal/llm"
	"GelezaSmart/internal/models"
	"GelezaSmart/internal/storage"
	"GelezaSmart/internal/tutor"
	"GelezaSmart/internal/voice"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

type fakeTranscriber struct{ text string }

func (f fakeTranscriber) Transcribe(context.Context, []byte) (string, error) {
	if f.text == "" {
		return "", voice.ErrNoSpeech
	}
	return f.text, nil
}

type fakeNarrator struct{}

func (fakeNarrator) Narrate(_ context.Context, text string) ([]byte, error) {
	return []byte("ID3" + text[:4]), nil
}

func newTestRouter(t *testing.T, opts RouterOptions, hopts ...Option) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "geleza.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, _ := auth.NewTokenManager("test-secret", time.Hour)
	tutorLLM := llm.NewTutor(llm.NewMockGenerator(), llm.Options{Vision: true}, nil)
	svc := tutor.NewService(storage.NewSQLiteProfileStore(db), tutorLLM, nil)
	return NewRouter(New(svc, tokens, nil, hopts...), opts, nil)
}

func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func onboard(t *testing.T, r http.Handler) OnboardingResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/onboarding", "", models.OnboardingData{FavoredCelebrity: "MrBeast", DreamJob: "Astronaut"})
	if w.Code != http.StatusOK {
		t.Fatalf("onboarding failed: %d %s", w.Code, w.Body.String())
	}
	var resp OnboardingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode onboarding: %v", err)
	}
	return resp
}

func TestChatFlow(t *testing.T) {
	r := newTestRouter(t, RouterOptions{})
	ob := onboard(t, r)
	if ob.Token == "" || len(ob.Messages) != 1 || !strings.Contains(ob.Messages[0].Text, "**MrBeast**") {
		t.Fatalf("unexpected onboarding response: %+v", ob)
	}

	if w := doJSON(r, http.MethodGet, "/api/profile", ob.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("profile: %d", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/api/messages", ob.Token, SendMessageRequest{Text: "What is 7 x 8?"})
	if w.Code != http.StatusOK {
		t.Fatalf("send: %d %s", w.Code, w.Body.String())
	}
	var ex tutor.Exchange
	json.Unmarshal(w.Body.Bytes(), &ex)
	if ex.User.Text != "What is 7 x 8?" || !strings.Contains(ex.Reply.Text, "Let's solve it together!") {
		t.Fatalf("unexpected exchange: %+v", ex)
	}

	w = doJSON(r, http.MethodGet, "/api/messages", ob.Token, nil)
	var list MessagesResponse
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Messages) != 3 || list.Processing {
		t.Fatalf("unexpected transcript: %+v", list)
	}

	if w := doJSON(r, http.MethodDelete, "/api/profile", ob.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("reset: %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/profile", ob.Token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("profile after reset should be 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/messages", ob.Token, SendMessageRequest{Text: "hi"}); w.Code != http.StatusNotFound {
		t.Fatalf("send after reset should be 404, got %d", w.Code)
	}
}

func TestSendRejections(t *testing.T) {
	r := newTestRouter(t, RouterOptions{})
	ob := onboard(t, r)

	cases := []struct {
		name string
		body SendMessageRequest
		want int
	}{
		{"empty", SendMessageRequest{Text: "  "}, http.StatusBadRequest},
		{"not a picture", SendMessageRequest{Text: "look", Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("plain text"))}, http.StatusBadRequest},
		{"broken uri", SendMessageRequest{Text: "look", Image: "image.png"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := doJSON(r, http.MethodPost, "/api/messages", ob.Token, tc.body); w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}

	if w := doJSON(r, http.MethodGet, "/api/messages", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should be 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/onboarding", "", models.OnboardingData{DreamJob: "Pilot"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing celebrity should be 400, got %d", w.Code)
	}
}

func TestSendMultipartImage(t *testing.T) {
	r := newTestRouter(t, RouterOptions{})
	ob := onboard(t, r)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("text", "Can you check my triangle?")
	part, _ := mw.CreateFormFile("image", "triangle.png")
	part.Write(tinyPNG)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/messages", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ob.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("multipart send: %d %s", w.Code, w.Body.String())
	}
	var ex tutor.Exchange
	json.Unmarshal(w.Body.Bytes(), &ex)
	if !strings.HasPrefix(ex.User.ImageURL, "data:image/png;base64,") {
		t.Fatalf("image not stored on user turn: %+v", ex.User)
	}
	if !strings.Contains(ex.Reply.Text, "(with a photo)") {
		t.Fatalf("image was not forwarded: %q", ex.Reply.Text)
	}
}

func TestClassCodeGate(t *testing.T) {
	r := newTestRouter(t, RouterOptions{ClassCode: "math-8b"})
	body := models.OnboardingData{FavoredCelebrity: "MrBeast", DreamJob: "Astronaut"}
	if w := doJSON(r, http.MethodPost, "/onboarding", "", body); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without class code, got %d", w.Code)
	}

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/onboarding", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Class-Code", "math-8b")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with class code, got %d", w.Code)
	}
}

func TestVoiceEndpoints(t *testing.T) {
	disabled := newTestRouter(t, RouterOptions{})
	ob := onboard(t, disabled)
	if w := doJSON(disabled, http.MethodGet, "/api/messages/"+ob.Messages[0].ID+"/audio", ob.Token, nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with voice disabled, got %d", w.Code)
	}

	r := newTestRouter(t, RouterOptions{}, WithVoice(fakeTranscriber{text: "what is seven times eight"}, fakeNarrator{}))
	ob = onboard(t, r)

	w := doJSON(r, http.MethodGet, "/api/messages/"+ob.Messages[0].ID+"/audio", ob.Token, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "audio/mpeg" {
		t.Fatalf("narration: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if w := doJSON(r, http.MethodGet, "/api/messages/nope/audio", ob.Token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown message should be 404, got %d", w.Code)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("audio", "question.webm")
	part.Write([]byte("fake-opus"))
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/voice", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ob.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("voice send: %d %s", rec.Code, rec.Body.String())
	}
	var resp VoiceResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Transcript != "what is seven times eight" || resp.User.Text != resp.Transcript {
		t.Fatalf("unexpected voice response: %+v", resp)
	}
}

func TestWebSocketChat(t *testing.T) {
	r := newTestRouter(t, RouterOptions{})
	ob := onboard(t, r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?token=" + ob.Token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() serverFrame {
		t.Helper()
		var f serverFrame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return f
	}

	if f := read(); f.Type != frameMessage || f.Message.Role != models.RoleModel {
		t.Fatalf("expected greeting frame, got %+v", f)
	}

	conn.WriteJSON(clientFrame{Text: "2 + 2?"})
	if f := read(); f.Type != frameProcessing {
		t.Fatalf("expected processing frame, got %+v", f)
	}
	if f := read(); f.Type != frameMessage || f.Message.Role != models.RoleUser {
		t.Fatalf("expected user frame, got %+v", f)
	}
	if f := read(); f.Type != frameMessage || f.Message.Role != models.RoleModel {
		t.Fatalf("expected reply frame, got %+v", f)
	}

	conn.WriteJSON(clientFrame{Text: "", Image: "broken"})
	if f := read(); f.Type != frameRejected || f.Error == "" {
		t.Fatalf("expected rejected frame, got %+v", f)
	}
}

func TestWebSocketRequiresToken(t *testing.T) {
	r := newTestRouter(t, RouterOptions{})
	req := httptest.NewRequest(http.MethodGet, "/ws/chat?token=bogus", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
