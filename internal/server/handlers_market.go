package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/directionwise/internal/insights"
)

func (s *Server) handleMarketInsights(w http.ResponseWriter, r *http.Request) {
	report, err := insights.Aggregate(r.Context(), s.Market)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMarketComparison(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": insights.FieldComparisons(s.Knowledge)})
}

// handleMarketTrends returns the career demand series and, for the fields
// named in ?fields= (all when absent), their monthly market trends.
func (s *Server) handleMarketTrends(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("fields"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := s.Knowledge.Field(id); !ok {
				writeError(w, r, &ErrNotFound{Resource: "field", Key: id})
				return
			}
			ids = append(ids, id)
		}
	}
	demand, err := s.Market.DemandTrends(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"demand": demand,
		"fields": insights.FieldTrends(s.Knowledge, ids...),
	})
}
