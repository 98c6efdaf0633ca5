package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/internal/domain/entity"
	"github.com/kotobukicho/kotobuki/internal/interface/middleware"
	"github.com/kotobukicho/kotobuki/pkg/apperr"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
	"github.com/kotobukicho/kotobuki/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	seq     int
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperr.New(apperr.KindConflict, "User already exists")
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, apperr.New(apperr.KindNotFound, "User not found")
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		found := *u
		return &found, nil
	}
	return nil, apperr.New(apperr.KindNotFound, "User not found")
}

type memCardRepo struct {
	cards map[string]*entity.Card
	seq   int
}

func (r *memCardRepo) Create(_ context.Context, c *entity.Card) error {
	for _, existing := range r.cards {
		if existing.CardID == c.CardID {
			return apperr.New(apperr.KindConflict, "Card id already exists")
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("internal-%d", r.seq)
	c.CreatedAt = time.Unix(1_700_000_000, 0).Add(time.Duration(r.seq) * time.Minute)
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.cards[c.ID] = &stored
	return nil
}

func (r *memCardRepo) ListByCreatedDesc(_ context.Context) ([]entity.Card, error) {
	out := make([]entity.Card, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memCardRepo) GetByCardID(_ context.Context, cardID string) (*entity.Card, error) {
	for _, c := range r.cards {
		if c.CardID == cardID {
			found := *c
			return &found, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Card not found")
}

func (r *memCardRepo) GetByID(_ context.Context, id string) (*entity.Card, error) {
	if c, ok := r.cards[id]; ok {
		found := *c
		return &found, nil
	}
	return nil, apperr.New(apperr.KindNotFound, "Card not found")
}

func (r *memCardRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.cards[id]; !ok {
		return false, nil
	}
	delete(r.cards, id)
	return true, nil
}

type memBlobStore struct {
	baseURL string
	objects map[string][]byte
	deleted []string
}

func (s *memBlobStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[objectPath] = data
	return s.baseURL + objectPath, nil
}

func (s *memBlobStore) Delete(_ context.Context, objectPath string) error {
	s.deleted = append(s.deleted, objectPath)
	delete(s.objects, objectPath)
	return nil
}

func (s *memBlobStore) Open(_ context.Context, objectPath string) (io.ReadCloser, string, error) {
	data, ok := s.objects[objectPath]
	if !ok {
		return nil, "", storage.ErrObjectNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *memBlobStore) ObjectPath(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, s.baseURL) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, s.baseURL), true
}

// testEnv wires handlers onto a Gin engine the way the router modules do,
// with in-memory repositories behind the services.
type testEnv struct {
	engine *gin.Engine
	users  *memUserRepo
	cards  *memCardRepo
	blobs  *memBlobStore
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
	cards := &memCardRepo{cards: map[string]*entity.Card{}}
	blobs := &memBlobStore{baseURL: "https://blobs.test/", objects: map[string][]byte{}}

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(users, jwt, logger)
	uploadSvc := application.NewUploadService(blobs, logger)
	cardSvc := application.NewCardService(cards, uploadSvc, nil, logger)

	authH := NewAuthHandler(authSvc, logger)
	cardH := NewCardHandler(cardSvc, logger)
	uploadH := NewUploadHandler(uploadSvc, logger)

	e := gin.New()
	api := e.Group("/api")
	api.POST("/auth/signup", authH.SignUp)
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/user", authH.CurrentUser)
	api.GET("/cards", cardH.List)
	api.GET("/cards/:cardId", cardH.Get)
	api.GET("/blobs/:bucket/:fileName", uploadH.ServeBlob)

	protected := api.Group("", middleware.Auth(jwt))
	protected.POST("/cards", cardH.Create)
	protected.DELETE("/cards/:id", cardH.Delete)
	protected.POST("/upload-file", uploadH.Upload)
	protected.POST("/delete-file", uploadH.DeleteFile)

	return &testEnv{engine: e, users: users, cards: cards, blobs: blobs}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// signup registers a user through the API and returns its id and token.
func (env *testEnv) signup(t *testing.T, email string) (userID, token string) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func uploadMultipart(t *testing.T, env *testEnv, token, fileName, bucket string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if bucket != "" {
		require.NoError(t, mw.WriteField("bucket", bucket))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}
