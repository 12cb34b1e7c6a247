package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	stylingcache "chartsmith/internal/cache/styling"
	"chartsmith/internal/config"
	"chartsmith/internal/repository/chartstore"
	"chartsmith/internal/repository/datasetfile"
	stylingrepo "chartsmith/internal/repository/styling"
)

type apiStores struct {
	charts  chartstore.Store
	styling *stylingcache.CachedStore
	files   datasetfile.Store
	db      *sql.DB
}

func (s *apiStores) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}

func initStores(cfg *config.Config) (*apiStores, error) {
	files := initFileStore(cfg)

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		stores, err := initPostgresStores(dsn, files)
		if err == nil {
			return stores, nil
		}
		log.Printf("stores: postgres unavailable, falling back to memory: %v", err)
	}
	log.Printf("stores: using in-memory chart and styling stores")
	return &apiStores{
		charts:  chartstore.NewMemoryStore(),
		styling: stylingcache.NewCachedStore(stylingrepo.NewMemoryStore(), stylingcache.DefaultCacheConfig()),
		files:   files,
	}, nil
}

func initPostgresStores(dsn string, files datasetfile.Store) (*apiStores, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	charts, err := chartstore.NewPostgresStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Printf("stores: postgres chart and styling stores")
	return &apiStores{
		charts:  charts,
		styling: stylingcache.NewCachedStore(stylingrepo.NewPostgresStore(db), stylingcache.DefaultCacheConfig()),
		files:   files,
		db:      db,
	}, nil
}

func initFileStore(cfg *config.Config) datasetfile.Store {
	if !cfg.Storage.Enabled {
		log.Printf("dataset files: in-memory store")
		return datasetfile.NewMemoryStore()
	}
	s3, err := datasetfile.NewS3Store(datasetfile.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Printf("dataset files: s3 init failed, using memory store: %v", err)
		return datasetfile.NewMemoryStore()
	}
	log.Printf("dataset files: s3 bucket=%s endpoint=%s", cfg.Storage.Bucket, cfg.Storage.Endpoint)
	return s3
}
