package response

import (
	"errors"
	"net/http"

	"crypto-checkout/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body the storefront consumes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK sends a 200 response with data as the body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{Error: appErr.Message})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
