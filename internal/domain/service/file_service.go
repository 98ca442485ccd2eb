package service

import (
	"context"
	"io"
)

// FileUploadService is the blob store holding chat attachments.
type FileUploadService interface {
	Upload(ctx context.Context, objectName string, body io.Reader, contentType string) error
	DownloadURL(ctx context.Context, objectName string) (string, error)
	Close() error
}
