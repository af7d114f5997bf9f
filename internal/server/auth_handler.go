package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/types"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	events      events.Publisher
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, publisher events.Publisher) *AuthHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AuthHandler{userService: userService, jwtService: jwtService, events: publisher}
}

// Register creates an account and returns it with a bearer token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeAndValidate(r, &req, req.Validate); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	publish(r.Context(), h.events, events.New(events.TypeUserRegistered, user.ID, map[string]string{"uid": user.UID.String()}))
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login checks credentials and returns the user with a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeAndValidate(r, &req, req.Validate); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID, user.UID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, types.LoginResponse{User: user, Token: token})
}

// publish sends an event without failing the request.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", slog.String("type", e.Type), slog.String("error", err.Error()))
	}
}
