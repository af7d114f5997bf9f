package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/directionwise/internal/comparison"
	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/types"
)

type fieldSummary struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	DemandLevel types.DemandLevel `json:"demand_level"`
	SalaryRange string            `json:"salary_range"`
	GrowthRate  string            `json:"growth_rate"`
	Careers     int               `json:"careers"`
}

func (s *Server) handleListFields(w http.ResponseWriter, _ *http.Request) {
	fields := s.Knowledge.Fields()
	out := make([]fieldSummary, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldSummary{
			ID:          f.ID,
			DisplayName: knowledge.DisplayName(f.ID),
			DemandLevel: f.DemandLevel,
			SalaryRange: f.SalaryRange,
			GrowthRate:  f.GrowthRate,
			Careers:     len(f.Careers),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": out})
}

func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	field, ok := s.Knowledge.Field(id)
	if !ok {
		writeError(w, r, &ErrNotFound{Resource: "field", Key: id})
		return
	}
	writeJSON(w, http.StatusOK, field)
}

func (s *Server) handleMentorship(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("field")
	if _, ok := s.Knowledge.Field(id); !ok {
		writeError(w, r, &ErrNotFound{Resource: "field", Key: id})
		return
	}
	stories, fallback := s.Knowledge.Mentorship(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"field":    id,
		"stories":  stories,
		"fallback": fallback,
	})
}

func (s *Server) handleListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := s.Store.ListCareers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"careers": careers, "count": len(careers)})
}

func (s *Server) handleSearchCareers(w http.ResponseWriter, r *http.Request) {
	k, err := intQuery(r, "k", 5, 1, 50)
	if err != nil {
		writeError(w, r, err)
		return
	}
	query := r.URL.Query().Get("q")
	hits, err := s.Search.Search(r.Context(), query, k)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "results": hits})
}

func (s *Server) handleRandomCareers(w http.ResponseWriter, r *http.Request) {
	k, err := intQuery(r, "k", 6, 1, 50)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, err := s.Recommender.Random(r.Context(), k)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *Server) handleCareerTrends(w http.ResponseWriter, r *http.Request) {
	career := strings.TrimSpace(r.URL.Query().Get("career"))
	points, err := s.Store.CareerTrendSeries(r.Context(), career)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"career": career, "points": points})
}

func (s *Server) handleCompareCareers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	first, second := strings.TrimSpace(q.Get("first")), strings.TrimSpace(q.Get("second"))
	if first == "" || second == "" {
		writeError(w, r, &ErrValidation{Field: "first,second", Message: "both careers are required"})
		return
	}
	result, err := comparison.Compare(r.Context(), s.Store, s.Knowledge, first, second)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	seeded, err := s.Store.SeedIfEmpty(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Search.InvalidateCache()
	// Refit eagerly.
	if _, err := s.Search.Search(r.Context(), "career", 1); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reindexed", "seeded": seeded, "fitted": s.Search.Fitted()})
}
