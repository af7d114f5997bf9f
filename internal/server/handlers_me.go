package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/server/middleware"
	"github.com/jonathan/directionwise/internal/types"
)

type saveCareerRequest struct {
	Career string `json:"career" validate:"required,max=200"`
	Notes  string `json:"notes" validate:"max=1000"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	list, err := s.Store.ListAssessments(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": list})
}

func (s *Server) handleListSavedCareers(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	list, err := s.Store.ListInteractions(r.Context(), userID, types.InteractionSaveCareer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved_careers": list})
}

// handleSaveCareer records a catalog career as saved by the user.
func (s *Server) handleSaveCareer(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var req saveCareerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Career)
	career, err := s.Store.GetCareerByName(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if career == nil {
		writeError(w, r, &ErrNotFound{Resource: "career", Key: name})
		return
	}

	data, err := json.Marshal(map[string]any{"career_id": career.ID, "field": career.Field, "notes": req.Notes})
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to encode interaction: %w", err))
		return
	}
	interaction := &types.Interaction{
		UserID:          userID,
		InteractionType: types.InteractionSaveCareer,
		Content:         career.Name,
		Data:            data,
	}
	id, err := s.Store.RecordInteraction(r.Context(), interaction)
	if err != nil {
		writeError(w, r, err)
		return
	}
	interaction.ID = id
	interaction.CreatedAt = time.Now().UTC()
	publish(r.Context(), s.Events, events.New(events.TypeCareerSaved, userID, map[string]any{"career": career.Name, "field": career.Field}))
	writeJSON(w, http.StatusCreated, interaction)
}
