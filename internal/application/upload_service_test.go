package application

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotobukicho/kotobuki/pkg/apperr"
)

func TestNormalizeBucket(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "images", "card-images"} {
		b, err := NormalizeBucket(in)
		require.NoError(t, err)
		assert.Equal(t, BucketImages, b)
	}
	for _, in := range []string{"music", "card-music"} {
		b, err := NormalizeBucket(in)
		require.NoError(t, err)
		assert.Equal(t, BucketMusic, b)
	}

	_, err := NormalizeBucket("documents")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Unknown bucket", apperr.UserMessage(err))
}

func TestUploadStore_KeyShape(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	svc := NewUploadService(blobs, testLogger())

	url, err := svc.Store(context.Background(), strings.NewReader("jpeg bytes"), 10, "My Photo.JPG", "image/jpeg", "")
	require.NoError(t, err)

	// Default bucket is card-images; the key is millis-suffix.ext with the
	// extension lowercased.
	assert.Regexp(t, regexp.MustCompile(`^https://blobs\.test/card-images/\d+-[a-z0-9]+\.jpg$`), url)

	url, err = svc.Store(context.Background(), strings.NewReader("mp3 bytes"), 9, "song.mp3", "audio/mpeg", "music")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^https://blobs\.test/card-music/\d+-[a-z0-9]+\.mp3$`), url)
}

func TestUploadStore_NoFile(t *testing.T) {
	t.Parallel()

	svc := NewUploadService(newFakeBlobStore(), testLogger())

	_, err := svc.Store(context.Background(), nil, 0, "x.jpg", "image/jpeg", "")
	require.Error(t, err)
	assert.Equal(t, "No file provided", apperr.UserMessage(err))

	_, err = svc.Store(context.Background(), strings.NewReader(""), 0, "x.jpg", "image/jpeg", "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUploadStore_UnknownBucket(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	svc := NewUploadService(blobs, testLogger())

	_, err := svc.Store(context.Background(), strings.NewReader("data"), 4, "x.jpg", "image/jpeg", "documents")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, blobs.objects)
}

func TestRemoveByURL(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	blobs.objects["card-images/1-abc.jpg"] = []byte("img")
	svc := NewUploadService(blobs, testLogger())

	svc.RemoveByURL(context.Background(), blobs.baseURL+"card-images/1-abc.jpg")
	assert.Equal(t, []string{"card-images/1-abc.jpg"}, blobs.deleted)

	// URLs outside our storage host are skipped, not deleted.
	svc.RemoveByURL(context.Background(), "https://example.com/card-images/1-abc.jpg")
	assert.Len(t, blobs.deleted, 1)
}

func TestRemove_BestEffort(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	blobs.deleteErr = fmt.Errorf("backend down")
	svc := NewUploadService(blobs, testLogger())

	// Neither an unknown bucket nor a backend failure is surfaced.
	svc.Remove(context.Background(), "documents", "1-abc.pdf")
	svc.Remove(context.Background(), "images", "1-abc.jpg")
}

func TestOpen(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	blobs.objects["card-music/7-tune.mp3"] = []byte("tune bytes")
	svc := NewUploadService(blobs, testLogger())

	rc, contentType, err := svc.Open(context.Background(), "music", "7-tune.mp3")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "tune bytes", string(data))
	assert.NotEmpty(t, contentType)

	_, _, err = svc.Open(context.Background(), "music", "missing.mp3")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
