package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kotobukicho/kotobuki/pkg/apperr"
)

// Error bodies always carry a short human-readable message field, and never
// anything else a client could use to distinguish server internals.

// JSON writes payload as-is with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Message writes a bare {"message": ...} body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Invalid writes a 400 with a message and optional per-field details.
func Invalid(c *gin.Context, message string, details any) {
	if details == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": message, "details": details})
}

// FromError maps a core error to its HTTP status and user-safe message.
func FromError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.UserMessage(err)})
}
