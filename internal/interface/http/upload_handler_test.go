package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "uploader@example.com")

	w := uploadMultipart(t, env, token, "My Photo.JPG", "", []byte("jpeg bytes"))
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	url := decodeBody(t, w)["url"].(string)
	assert.Regexp(t, `^https://blobs\.test/card-images/\d+-[a-z0-9]+\.jpg$`, url)

	w = uploadMultipart(t, env, token, "track.mp3", "music", []byte("mp3 bytes"))
	require.Equal(t, http.StatusOK, w.Code)
	url = decodeBody(t, w)["url"].(string)
	assert.True(t, strings.Contains(url, "/card-music/"), "url: %s", url)
}

func TestUploadEndpoint_NoFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "empty@example.com")

	w := uploadMultipart(t, env, token, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file provided", decodeBody(t, w)["message"])
}

func TestUploadEndpoint_UnknownBucket(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "bucket@example.com")

	w := uploadMultipart(t, env, token, "doc.pdf", "documents", []byte("pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown bucket", decodeBody(t, w)["message"])
}

func TestUploadEndpoint_RequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	w := uploadMultipart(t, env, "", "x.jpg", "", []byte("data"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteFileEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "deleter@example.com")
	env.blobs.objects["card-images/1-abc.jpg"] = []byte("img")

	w := env.do(t, http.MethodPost, "/api/delete-file", token, gin.H{
		"url": env.blobs.baseURL + "card-images/1-abc.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, []string{"card-images/1-abc.jpg"}, env.blobs.deleted)
}

func TestDeleteFileEndpoint_ByBucketAndName(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "deleter2@example.com")
	env.blobs.objects["card-music/2-song.mp3"] = []byte("mp3")

	w := env.do(t, http.MethodPost, "/api/delete-file", token, gin.H{
		"bucket":   "music",
		"fileName": "2-song.mp3",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"card-music/2-song.mp3"}, env.blobs.deleted)
}

func TestDeleteFileEndpoint_MissingTarget(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, token := env.signup(t, "deleter3@example.com")

	w := env.do(t, http.MethodPost, "/api/delete-file", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "URL is required", decodeBody(t, w)["message"])
}

func TestServeBlobEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.blobs.objects["card-images/3-pic.jpg"] = []byte("pic bytes")

	w := env.do(t, http.MethodGet, "/api/blobs/images/3-pic.jpg", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pic bytes", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))

	w = env.do(t, http.MethodGet, "/api/blobs/images/missing.jpg", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
