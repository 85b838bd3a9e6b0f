package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
)

// OSSStore uploads files to an Aliyun OSS bucket.
type OSSStore struct {
	bucket  *oss.Bucket
	baseURL string
}

var _ gateways.FileStore = (*OSSStore)(nil)

// NewOSSStore connects to the bucket. Without publicBaseURL, object URLs use the bucket's
// virtual-hosted endpoint.
func NewOSSStore(endpoint, accessKeyID, accessKeySecret, bucketName, publicBaseURL string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", bucketName, err)
	}

	baseURL := strings.TrimRight(publicBaseURL, "/")
	if baseURL == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		baseURL = "https://" + bucketName + "." + host
	}
	return &OSSStore{bucket: bkt, baseURL: baseURL}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	key = strings.TrimLeft(key, "/")
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("oss put %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
