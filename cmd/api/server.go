package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	memcache "chartsmith/internal/cache/memory"
	"chartsmith/internal/dataset"
	"chartsmith/internal/llm"
	"chartsmith/internal/pipeline"
	"chartsmith/internal/styling"
)

// apiServer wires the generation pipeline, the stores, and the styling
// edit sessions behind plain JSON endpoints.
type apiServer struct {
	generator *pipeline.Generator
	stores    *apiStores
	// parsed datasets by id; re-parsed from the file store on miss
	datasets *memcache.LRUTTL[string, *dataset.Dataset]
	sessions *styling.Registry
}

func newAPIServer(client llm.Client, stores *apiStores) *apiServer {
	return &apiServer{
		generator: &pipeline.Generator{LLM: client},
		stores:    stores,
		datasets:  memcache.NewLRUTTL[string, *dataset.Dataset](256, time.Hour),
		sessions:  styling.NewRegistry(),
	}
}

func buildMux(s *apiServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/datasets", s.handleUploadDataset)
	mux.HandleFunc("GET /api/datasets/{id}/schema", s.handleDatasetSchema)
	mux.HandleFunc("POST /api/charts/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/charts/{id}", s.handleGetChart)
	mux.HandleFunc("DELETE /api/charts/{id}", s.handleDeleteChart)
	mux.HandleFunc("GET /api/charts/{id}/styling", s.handleGetStyling)
	mux.HandleFunc("PATCH /api/charts/{id}/styling", s.handlePatchStyling)
	mux.HandleFunc("GET /api/styling/ws", s.handleStylingWS)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
