package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/types"
)

func registerBody(email, password, confirm string) map[string]string {
	return map[string]string{
		"full_name":        "Jane Doe",
		"email":            email,
		"password":         password,
		"confirm_password": confirm,
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/register", registerBody("Jane@Example.com", "secret1", "secret1"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[types.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "Jane Doe", resp.User.FullName)
	assert.NotContains(t, w.Body.String(), "password")

	got := env.events.Events()
	require.Len(t, got, 1)
	assert.Equal(t, events.TypeUserRegistered, got[0].Type)
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	w := env.do(t, http.MethodPost, "/auth/register", registerBody("JANE@example.com", "secret1", "secret1"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"password mismatch", registerBody("a@example.com", "secret1", "secret2")},
		{"short password", registerBody("a@example.com", "abc", "abc")},
		{"bad email", registerBody("not-an-email", "secret1", "secret1")},
		{"malformed json", []byte(`{"email":`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	w := env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "jane@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[types.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.LastLogin)

	w = env.do(t, http.MethodGet, "/me", nil, resp.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", decode[types.User](t, w).Email)
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	w := env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "jane@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ghost@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")

	w = env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "jane@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	env := newTestEnv(t)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		w := env.do(t, http.MethodGet, "/me/assessments", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "token %q", token)
	}
}
