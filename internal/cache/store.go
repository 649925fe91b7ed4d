// Package cache holds the compressed result cache: key derivation, the
// gzip codec, and the MinIO-backed object store.
package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the S3-shaped contract the orchestrator needs:
// existence check, streamed read, whole-body write.
type ObjectStore interface {
	Head(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, body []byte) error
}

// MinioStore implements ObjectStore against a MinIO/S3 bucket.
type MinioStore struct {
	client *miniogo.Client
	bucket string
}

var _ ObjectStore = (*MinioStore)(nil)

func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: create minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// Head reports whether the key exists. Not-found is (false, nil); any
// other error is returned for the caller to treat as it sees fit.
func (s *MinioStore) Head(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		resp := miniogo.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("cache: stat %s: %w", key, err)
	}
	return true, nil
}

// Get returns the stored body as a stream, still compressed.
func (s *MinioStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return obj, nil
}

// Put writes the gzip body under key, overwriting any previous entry.
func (s *MinioStore) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)),
		miniogo.PutObjectOptions{
			ContentType:     "application/json",
			ContentEncoding: "gzip",
		})
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}
