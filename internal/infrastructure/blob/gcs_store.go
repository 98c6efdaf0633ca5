package blob

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// GCSStore adapts a Google Cloud Storage bucket to the narrow blob store
// contract the upload gateway depends on. Object paths are
// "{bucket-category}/{file-key}" inside a single GCS bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// Upload writes the object and returns its public URL.
func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Delete removes the object.
func (s *GCSStore) Delete(ctx context.Context, objectPath string) error {
	return helpers.DeleteObject(ctx, s.client, s.bucket, objectPath)
}

// Open streams the object's bytes along with its stored content type.
func (s *GCSStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, string, error) {
	return helpers.OpenObject(ctx, s.client, s.bucket, objectPath)
}

// ObjectPath maps a public URL previously returned by Upload back to its
// object path. Returns false for URLs that do not belong to this bucket.
func (s *GCSStore) ObjectPath(publicURL string) (string, bool) {
	prefix := helpers.PublicURL(s.bucket, "")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(publicURL, prefix)
	if path == "" {
		return "", false
	}
	return path, true
}
