package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/pkg/response"
	"github.com/kotobukicho/kotobuki/pkg/validation"
)

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

type deleteFileRequest struct {
	URL      string `json:"url"`
	Bucket   string `json:"bucket"`
	FileName string `json:"fileName"`
}

// Upload handles POST /api/upload-file: multipart field "file" plus an
// optional "bucket" category field.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "No file provided")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.Store(c.Request.Context(), f, fh.Size, fh.Filename,
		fh.Header.Get("Content-Type"), c.PostForm("bucket"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url})
}

// DeleteFile handles POST /api/delete-file. The blob is identified either by
// its public URL or by bucket+fileName. Deletion is best-effort; the
// response is success as long as the request was well-formed.
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Invalid payload", validation.ToDetails(err))
		return
	}
	switch {
	case req.URL != "":
		h.Svc.RemoveByURL(c.Request.Context(), req.URL)
	case req.Bucket != "" && req.FileName != "":
		h.Svc.Remove(c.Request.Context(), req.Bucket, req.FileName)
	default:
		response.Message(c, http.StatusBadRequest, "URL is required")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

// ServeBlob handles GET /api/blobs/:bucket/:fileName, streaming a stored
// object with its content type.
func (h *UploadHandler) ServeBlob(c *gin.Context) {
	rc, contentType, err := h.Svc.Open(c.Request.Context(), c.Param("bucket"), c.Param("fileName"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer func() { _ = rc.Close() }()
	c.Header("Cache-Control", "public, max-age=31536000")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
