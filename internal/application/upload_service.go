package application

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/pkg/apperr"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// Bucket categories accepted by the upload gateway. Anything else is a
// client error.
const (
	BucketImages = "card-images"
	BucketMusic  = "card-music"
)

// NormalizeBucket maps the category names clients send (short or full) to
// the canonical bucket folder.
func NormalizeBucket(s string) (string, error) {
	switch s {
	case "", "images", BucketImages:
		return BucketImages, nil
	case "music", BucketMusic:
		return BucketMusic, nil
	}
	return "", apperr.New(apperr.KindValidation, "Unknown bucket")
}

// BlobStore is the narrow contract the upload gateway needs from the
// underlying object storage.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
	Open(ctx context.Context, objectPath string) (io.ReadCloser, string, error)
	ObjectPath(publicURL string) (string, bool)
}

// UploadService accepts uploaded files, derives collision-resistant storage
// keys, and hands bytes to the blob store.
type UploadService struct {
	Blobs  BlobStore
	Logger *logrus.Logger
}

func NewUploadService(blobs BlobStore, logger *logrus.Logger) *UploadService {
	return &UploadService{Blobs: blobs, Logger: logger}
}

// Store uploads a single file and returns its public URL.
func (s *UploadService) Store(ctx context.Context, r io.Reader, size int64, originalName, contentType, bucket string) (string, error) {
	if r == nil || size == 0 {
		return "", apperr.New(apperr.KindValidation, "No file provided")
	}
	b, err := NormalizeBucket(bucket)
	if err != nil {
		return "", err
	}
	key := helpers.DeriveFileKey(originalName)
	url, err := s.Blobs.Upload(ctx, b+"/"+key, contentType, r)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "Failed to upload file", err)
	}
	return url, nil
}

// Remove deletes bucket/fileName best-effort: failures are logged, never
// surfaced, and the caller proceeds regardless.
func (s *UploadService) Remove(ctx context.Context, bucket, fileName string) {
	b, err := NormalizeBucket(bucket)
	if err != nil {
		s.Logger.WithField("bucket", bucket).Warn("blob delete skipped: unknown bucket")
		return
	}
	s.delete(ctx, b+"/"+fileName)
}

// RemoveByURL deletes the blob a public URL points at, best-effort.
func (s *UploadService) RemoveByURL(ctx context.Context, url string) {
	path, ok := s.Blobs.ObjectPath(url)
	if !ok {
		s.Logger.WithField("url", url).Warn("blob delete skipped: foreign url")
		return
	}
	s.delete(ctx, path)
}

func (s *UploadService) delete(ctx context.Context, objectPath string) {
	if err := s.Blobs.Delete(ctx, objectPath); err != nil {
		s.Logger.WithError(err).WithField("object", objectPath).Warn("blob delete failed")
	}
}

// Open streams a stored blob for the passthrough endpoint.
func (s *UploadService) Open(ctx context.Context, bucket, fileName string) (io.ReadCloser, string, error) {
	b, err := NormalizeBucket(bucket)
	if err != nil {
		return nil, "", err
	}
	rc, contentType, err := s.Blobs.Open(ctx, b+"/"+fileName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, "", apperr.New(apperr.KindNotFound, "File not found")
		}
		return nil, "", apperr.Wrap(apperr.KindStorage, "Failed to read file", err)
	}
	return rc, contentType, nil
}
