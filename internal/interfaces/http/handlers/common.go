// Common helpers shared by the HTTP handlers.

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps application errors to HTTP status codes via the error
// taxonomy.  5xx causes are masked so storage details never leak to callers.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	body := ErrorResponse{
		Code:    string(code),
		Message: err.Error(),
	}
	if errors.IsServerError(code) {
		body = ErrorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal server error",
		}
	}
	c.AbortWithStatusJSON(status, body)
}
