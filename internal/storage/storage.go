package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service is the object-storage surface the report archive needs.
type Service interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
