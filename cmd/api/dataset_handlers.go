package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"chartsmith/internal/dataset"
	"chartsmith/internal/repository/datasetfile"
)

const maxUploadBytes = 32 << 20 // 32 MiB

type uploadResponse struct {
	DatasetID string         `json:"datasetId"`
	FileName  string         `json:"fileName"`
	Schema    dataset.Schema `json:"schema"`
}

// handleUploadDataset accepts a multipart CSV/XLSX upload, stores the raw
// file, parses it, and returns the dataset id plus its schema snapshot.
func (s *apiServer) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	name := strings.TrimSpace(header.Filename)
	d, err := parseByExtension(name, content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	if err := s.stores.files.Put(r.Context(), id, datasetfile.File{Name: name, Content: content}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store dataset file")
		return
	}
	s.datasets.Set(id, d)
	writeJSON(w, http.StatusOK, uploadResponse{
		DatasetID: id,
		FileName:  name,
		Schema:    dataset.Extract(d),
	})
}

func (s *apiServer) handleDatasetSchema(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDataset(r, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}
	writeJSON(w, http.StatusOK, dataset.Extract(d))
}

// loadDataset returns the parsed dataset, re-parsing the stored file when
// the in-memory entry has expired.
func (s *apiServer) loadDataset(r *http.Request, id string) (*dataset.Dataset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("dataset id is required")
	}
	if d, ok := s.datasets.Get(id); ok {
		return d, nil
	}
	f, err := s.stores.files.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	d, err := parseByExtension(f.Name, f.Content)
	if err != nil {
		return nil, err
	}
	s.datasets.Set(id, d)
	return d, nil
}

func parseByExtension(name string, content []byte) (*dataset.Dataset, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv", "":
		return dataset.ParseCSV(bytes.NewReader(content))
	case ".xlsx":
		return dataset.ParseXLSX(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", path.Ext(name))
	}
}
