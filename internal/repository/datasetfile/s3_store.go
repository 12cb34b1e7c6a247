package datasetfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Store keeps uploaded dataset files in S3-compatible object storage
// under <dataset_id>/<file_name>.
type S3Store struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client:     client,
		bucketName: bucket,
		region:     region,
	}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Store) Put(ctx context.Context, datasetID string, f File) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return fmt.Errorf("dataset_id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	content := f.Content
	if content == nil {
		content = []byte{}
	}
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey(datasetID, f.Name),
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
	return err
}

func (s *S3Store) Get(ctx context.Context, datasetID string) (File, error) {
	if s == nil {
		return File{}, fmt.Errorf("store is nil")
	}
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return File{}, fmt.Errorf("dataset_id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return File{}, fmt.Errorf("ensure bucket: %w", err)
	}

	// One file per dataset; find it under the dataset prefix.
	prefix := datasetID + "/"
	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return File{}, obj.Err
		}
		if obj.Key == "" {
			continue
		}
		r, err := s.client.GetObject(ctx, s.bucketName, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			return File{}, err
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			errResp := minio.ToErrorResponse(err)
			if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
				return File{}, ErrNotFound
			}
			return File{}, err
		}
		return File{Name: strings.TrimPrefix(obj.Key, prefix), Content: data}, nil
	}
	return File{}, ErrNotFound
}

func (s *S3Store) Delete(ctx context.Context, datasetID string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return fmt.Errorf("dataset_id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	prefix := datasetID + "/"
	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := s.client.RemoveObject(ctx, s.bucketName, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func objectKey(datasetID, name string) string {
	normalized := strings.TrimLeft(strings.TrimSpace(name), "/")
	if normalized == "" {
		normalized = "dataset"
	}
	return datasetID + "/" + normalized
}
