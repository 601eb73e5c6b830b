package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultURLTTL = 15 * time.Minute

// ArchivedReport is one stored export as shown to its owner.
type ArchivedReport struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	URL          string     `json:"url,omitempty"`
}

// ReportArchive keeps a copy of every exported report under
// <prefix>/<user id>/<uuid>.<ext>.
type ReportArchive struct {
	svc    Service
	bucket string
	prefix string
	urlTTL time.Duration
	newID  func() string
}

func NewReportArchive(svc Service, bucket, prefix string) *ReportArchive {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "reports"
	}
	return &ReportArchive{
		svc:    svc,
		bucket: bucket,
		prefix: prefix,
		urlTTL: defaultURLTTL,
		newID:  func() string { return uuid.NewString() },
	}
}

func (a *ReportArchive) userPrefix(userID int64) string {
	return path.Join(a.prefix, strconv.FormatInt(userID, 10)) + "/"
}

// Store uploads body and returns its storage location.
func (a *ReportArchive) Store(ctx context.Context, userID int64, ext, contentType string, body []byte) (string, error) {
	key := a.userPrefix(userID) + a.newID() + "." + strings.TrimPrefix(ext, ".")
	location, err := a.svc.Upload(ctx, a.bucket, key, bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}
	return location, nil
}

// List returns the user's archived reports, each with a short-lived download URL.
func (a *ReportArchive) List(ctx context.Context, userID int64) ([]ArchivedReport, error) {
	objects, err := a.svc.ListObjects(ctx, a.bucket, a.userPrefix(userID))
	if err != nil {
		return nil, err
	}

	out := make([]ArchivedReport, 0, len(objects))
	for _, obj := range objects {
		url, err := a.svc.GetObjectURL(ctx, a.bucket, obj.Key, a.urlTTL)
		if err != nil {
			return nil, err
		}
		out = append(out, ArchivedReport{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          url,
		})
	}
	return out, nil
}
