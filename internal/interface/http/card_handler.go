package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/internal/interface/middleware"
	"github.com/kotobukicho/kotobuki/pkg/response"
	"github.com/kotobukicho/kotobuki/pkg/validation"
)

type CardHandler struct {
	Svc    *application.CardService
	Logger *logrus.Logger
}

func NewCardHandler(svc *application.CardService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{Svc: svc, Logger: logger}
}

type createCardRequest struct {
	CardID       string  `json:"card_id" binding:"omitempty,len=6"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Category     *string `json:"category"`
	ImageURL     string  `json:"image_url" binding:"required,url"`
	MusicURL     *string `json:"music_url" binding:"omitempty,url"`
	MusicFileURL *string `json:"music_file_url" binding:"omitempty,url"`
}

// List handles GET /api/cards.
func (h *CardHandler) List(c *gin.Context) {
	cards, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"cards": cards})
}

// Get handles GET /api/cards/:cardId (public identifier lookup).
func (h *CardHandler) Get(c *gin.Context) {
	card, err := h.Svc.Get(c.Request.Context(), c.Param("cardId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"card": card})
}

// Create handles POST /api/cards. The image must already be uploaded.
func (h *CardHandler) Create(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Invalid payload", validation.ToDetails(err))
		return
	}
	card, err := h.Svc.Create(c.Request.Context(), application.CreateCardInput{
		UserID:       c.GetString(middleware.CtxUserIDKey),
		CardID:       req.CardID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		MusicURL:     req.MusicURL,
		MusicFileURL: req.MusicFileURL,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"card": card})
}

// Delete handles DELETE /api/cards/:id (internal identifier, owner only).
func (h *CardHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
