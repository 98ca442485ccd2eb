package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// downloadTokenKey is the object metadata key Firebase Storage reads its
// download tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// Upload writes body to objectName and attaches a fresh download token.
func (c *CloudStorageClient) Upload(ctx context.Context, objectName string, body io.Reader, contentType string) error {
	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{downloadTokenKey: uuid.New().String()}

	if _, err := io.Copy(wc, body); err != nil {
		wc.Close()
		return fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}

	return nil
}

// DownloadURL resolves the token-bearing Firebase download URL of an object,
// minting a token if the object has none.
func (c *CloudStorageClient) DownloadURL(ctx context.Context, objectName string) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get object attributes: %v", err)
	}

	token := firstToken(attrs.Metadata[downloadTokenKey])
	if token == "" {
		token = uuid.New().String()
		metadata := attrs.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		metadata[downloadTokenKey] = token
		if _, err := obj.Update(ctx, storage.ObjectAttrsToUpdate{Metadata: metadata}); err != nil {
			return "", fmt.Errorf("failed to set download token: %v", err)
		}
	}

	return DownloadURL(c.bucketName, objectName, token), nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// DownloadURL formats the public Firebase Storage URL for an object.
func DownloadURL(bucket, objectName, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(objectName), url.QueryEscape(token))
}

// Firebase stores multiple tokens comma separated.
func firstToken(tokens string) string {
	token, _, _ := strings.Cut(tokens, ",")
	return strings.TrimSpace(token)
}
