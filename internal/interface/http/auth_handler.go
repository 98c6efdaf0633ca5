package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/pkg/response"
	"github.com/kotobukicho/kotobuki/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Password length is checked by the service so the client sees the exact
// "Password must be at least 6 characters" message, not a generic one.
type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func authPayload(res *application.AuthResult) gin.H {
	return gin.H{
		"user": gin.H{
			"id":    res.User.ID,
			"email": res.User.Email,
		},
		"token": res.Token,
	}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Email and password are required", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, authPayload(res))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "Email and password are required", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, authPayload(res))
}

// CurrentUser handles GET /api/auth/user: it verifies the bearer token and
// returns the current user record, 404 if the decoded user no longer exists.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	token := BearerToken(c)
	u, err := h.Svc.Verify(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"created_at": u.CreatedAt,
		},
	})
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}
