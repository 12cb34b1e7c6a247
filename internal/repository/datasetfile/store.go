package datasetfile

import (
	"context"
	"errors"
)

// File is one uploaded dataset file, kept verbatim so a dataset can be
// re-parsed later.
type File struct {
	Name    string
	Content []byte
}

// Store persists raw uploaded dataset files by dataset id.
type Store interface {
	Put(ctx context.Context, datasetID string, f File) error
	Get(ctx context.Context, datasetID string) (File, error)
	Delete(ctx context.Context, datasetID string) error
}

var ErrNotFound = errors.New("dataset file not found")
