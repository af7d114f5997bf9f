package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/server/ratelimit"
	"github.com/jonathan/directionwise/internal/types"
)

type testEnv struct {
	srv      *Server
	store    *db.SQLiteStore
	events   *events.Recorder
	sessions *quiz.MemoryStore
}

func newTestEnv(t *testing.T, opts ...func(*Config, *Deps)) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.SeedIfEmpty(ctx)
	require.NoError(t, err)

	sessions := quiz.NewMemoryStore(time.Hour, 0)
	t.Cleanup(func() { _ = sessions.Close() })

	recorder := &events.Recorder{}
	cfg := Config{RateLimit: &ratelimit.Config{Enabled: false}}
	deps := Deps{
		Store:     store,
		Knowledge: knowledge.MustLoad(),
		Sessions:  sessions,
		Events:    recorder,
		Passwords: &config.PasswordConfig{BcryptCost: 4},
		JWT:       &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing", ExpirationHours: 1, Issuer: "test"},
	}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}

	srv, err := New(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: store, events: recorder, sessions: sessions}
}

// do sends a request through the full middleware chain. A non-nil body is
// sent as JSON unless it is already a []byte.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	isJSON := false
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
		isJSON = true
	}
	req := httptest.NewRequest(method, path, reader)
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and id.
func (e *testEnv) register(t *testing.T, email string) (string, int64) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"full_name":        "Test User",
		"email":            email,
		"password":         "password123",
		"confirm_password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// allAnswers picks the first option of every question.
func allAnswers() []types.QuizAnswer {
	qs := quiz.Questions()
	out := make([]types.QuizAnswer, 0, len(qs))
	for _, q := range qs {
		out = append(out, types.QuizAnswer{Category: q.Category, SelectedOption: q.Options[0]})
	}
	return out
}
