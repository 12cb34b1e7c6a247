package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
	"chartsmith/internal/llm"
	"chartsmith/internal/pipeline"
	"chartsmith/internal/query"
	"chartsmith/internal/repository/chartstore"
	stylingrepo "chartsmith/internal/repository/styling"
	"chartsmith/internal/styling"
)

type generateRequest struct {
	UserPrompt string          `json:"userPrompt"`
	DatasetID  string          `json:"datasetId,omitempty"`
	DataSchema *dataset.Schema `json:"dataSchema,omitempty"`
	MessageID  string          `json:"messageId,omitempty"`
	// RequestToken is echoed back so callers can discard stale responses
	// when they fire a second generation before the first returns.
	RequestToken string `json:"requestToken,omitempty"`
	Palette      string `json:"palette,omitempty"`
}

type generateResponse struct {
	Success      bool                  `json:"success"`
	Config       *chart.Config         `json:"config,omitempty"`
	ChartID      string                `json:"chartId,omitempty"`
	Data         []chart.DataPoint     `json:"data,omitempty"`
	Table        *query.TableResult    `json:"table,omitempty"`
	Styling      *styling.ChartStyling `json:"styling,omitempty"`
	Error        string                `json:"error,omitempty"`
	Usage        *llm.Usage            `json:"usage,omitempty"`
	RequestToken string                `json:"requestToken,omitempty"`
}

// handleGenerate runs the full pipeline: schema → prompt → model →
// parse → execute, then saves the chart record. A recoverable failure
// comes back as success=false with a user-facing message; any chart the
// caller already renders stays untouched.
func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		writeError(w, http.StatusBadRequest, "userPrompt is required")
		return
	}

	var d *dataset.Dataset
	var schema dataset.Schema
	switch {
	case strings.TrimSpace(req.DatasetID) != "":
		var err error
		d, err = s.loadDataset(r, req.DatasetID)
		if err != nil {
			writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		schema = dataset.Extract(d)
	case req.DataSchema != nil:
		schema = *req.DataSchema
	default:
		writeError(w, http.StatusBadRequest, "datasetId or dataSchema is required")
		return
	}

	out := s.generator.Run(r.Context(), pipeline.GenerateRequest{
		UserPrompt: req.UserPrompt,
		Schema:     schema,
	})
	resp := generateResponse{
		Success:      out.Success,
		Config:       out.Config,
		Error:        out.Error,
		Usage:        out.Usage,
		RequestToken: req.RequestToken,
	}
	if !out.Success {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if d != nil {
		cfg := *out.Config
		if cfg.ChartType == chart.TypeTable {
			table := query.ExecuteTable(d, cfg)
			resp.Table = &table
		} else {
			resp.Data = query.Execute(d, cfg)
		}
		defStyle := styling.Default(styling.Palette(req.Palette), len(resp.Data))
		resp.Styling = &defStyle

		rec := chartstore.Record{
			ID:        uuid.NewString(),
			DatasetID: strings.TrimSpace(req.DatasetID),
			MessageID: strings.TrimSpace(req.MessageID),
			Config:    cfg,
			Styling:   &defStyle,
			CreatedAt: time.Now(),
		}
		if err := s.stores.charts.Put(r.Context(), rec); err != nil {
			log.Printf("generate: save chart: %v", err)
		} else {
			resp.ChartID = rec.ID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type chartResponse struct {
	Record  chartstore.Record    `json:"record"`
	Data    []chart.DataPoint    `json:"data,omitempty"`
	Table   *query.TableResult   `json:"table,omitempty"`
	Styling styling.ChartStyling `json:"styling"`
}

// handleGetChart re-executes a saved chart against its dataset and
// resolves the styling to show.
func (s *apiServer) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.stores.charts.Get(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chartstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, "chart not found")
		return
	}

	resp := chartResponse{Record: rec}
	if d, err := s.loadDataset(r, rec.DatasetID); err == nil {
		if rec.Config.ChartType == chart.TypeTable {
			table := query.ExecuteTable(d, rec.Config)
			resp.Table = &table
		} else {
			resp.Data = query.Execute(d, rec.Config)
		}
	}
	resp.Styling = s.resolveStyling(r, rec, len(resp.Data))
	writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := s.sessions.Close(r.Context(), id); err != nil {
		log.Printf("delete chart %s: styling flush: %v", id, err)
	}
	// After the session is closed nothing can write the row back, so the
	// persisted styling goes with the chart.
	if err := s.stores.styling.DeleteChart(r.Context(), id); err != nil {
		log.Printf("delete chart %s: styling delete: %v", id, err)
	}
	if err := s.stores.charts.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete chart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// resolveStyling applies the display precedence: an open edit session's
// live value first, then the session cache, the persisted snapshot on
// the record, and finally the computed default.
func (s *apiServer) resolveStyling(r *http.Request, rec chartstore.Record, points int) styling.ChartStyling {
	if ctrl, ok := s.sessions.Get(rec.ID); ok {
		// Another process may have saved newer styling while this session
		// was open; fold it in. A pending local edit still wins.
		if v, err := s.stores.styling.Load(r.Context(), rec.ID); err == nil {
			ctrl.AdoptPersisted(fillStyling(v, ctrl.Live()))
		}
		return ctrl.Live()
	}
	var cached *styling.ChartStyling
	if v, ok := s.stores.styling.Cached(rec.ID); ok {
		cached = &v
	} else if v, err := s.stores.styling.Load(r.Context(), rec.ID); err == nil {
		cached = &v
	} else if !errors.Is(err, stylingrepo.ErrNotFound) {
		log.Printf("styling load %s: %v", rec.ID, err)
	}
	return styling.Resolve(cached, rec.Styling, nil, nil, points)
}

// fillStyling completes a sparse stored row with the session's current
// value, so adopting it never blanks fields no save has touched.
func fillStyling(v, base styling.ChartStyling) styling.ChartStyling {
	out := v.Clone()
	if len(out.Colors) == 0 {
		out.Colors = append([]string(nil), base.Colors...)
	}
	if out.Typography.FontSize == 0 {
		out.Typography.FontSize = base.Typography.FontSize
	}
	if out.Typography.FontFamily == "" {
		out.Typography.FontFamily = base.Typography.FontFamily
	}
	if out.Typography.Color == "" {
		out.Typography.Color = base.Typography.Color
	}
	return out
}
