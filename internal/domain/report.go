package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrReportsUnavailable = errors.New("report storage is not configured")

// ReportStorage persists exported report files.
type ReportStorage interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ExportedReport describes an uploaded report.
type ExportedReport struct {
	Month     string    `json:"month"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}
