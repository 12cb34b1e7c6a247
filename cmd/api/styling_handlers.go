package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chartsmith/internal/repository/chartstore"
	"chartsmith/internal/styling"
)

func (s *apiServer) handleGetStyling(w http.ResponseWriter, r *http.Request) {
	rec, err := s.stores.charts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chartstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, "chart not found")
		return
	}
	writeJSON(w, http.StatusOK, s.resolveStyling(r, rec, 0))
}

// handlePatchStyling records one styling edit: the live value updates
// immediately and persistence follows after the debounce window.
func (s *apiServer) handlePatchStyling(w http.ResponseWriter, r *http.Request) {
	var patch styling.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "empty styling patch")
		return
	}
	rec, err := s.stores.charts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chartstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, "chart not found")
		return
	}

	ctrl := s.sessionFor(r, rec)
	ctrl.Apply(patch)
	writeJSON(w, http.StatusOK, ctrl.Live())
}

// sessionFor returns the open edit session for a chart, creating one
// seeded with the resolved styling and wired to every interested sink:
// the standalone chart record and, when present, the chat-message record.
func (s *apiServer) sessionFor(r *http.Request, rec chartstore.Record) *styling.Controller {
	return s.sessions.GetOrCreate(rec.ID, func() *styling.Controller {
		initial := s.resolveStyling(r, rec, 0)
		sinks := []styling.Sink{{
			Name: "chart",
			Save: func(ctx context.Context, p styling.Patch) error {
				return s.stores.styling.SaveChart(ctx, rec.ID, p)
			},
		}}
		if msgID := strings.TrimSpace(rec.MessageID); msgID != "" {
			sinks = append(sinks, styling.Sink{
				Name: "message",
				Save: func(ctx context.Context, p styling.Patch) error {
					return s.stores.styling.SaveMessage(ctx, msgID, p)
				},
			})
		}
		return styling.NewController(initial, styling.DefaultQuiet, sinks...)
	})
}
