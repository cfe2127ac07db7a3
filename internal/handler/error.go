package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// writeInternalError records err on the context for the request logger and
// answers with an opaque message.
func writeInternalError(c *gin.Context, err error, status int, code, message string) {
	_ = c.Error(err)
	writeError(c, status, code, message)
}
