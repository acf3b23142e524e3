package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInternal      = "Internal server error"
	msgUserNotFound  = "User not found"
	msgPostNotFound  = "Blog not found or unauthorized"
	msgImageTooLarge = "Image is too large"
	msgImageNotImage = "Only image uploads are allowed"
	msgNotFoundPlain = "Not found"
	msgAgeNotANumber = "Age must be a number"
)

// writeError maps a service error onto a status and a client-safe message.
// Anything unrecognised is logged with the request id and reported as a
// bare 500.
func (h *handler) writeError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, msgInternal

	var verr *common.ValidationError
	switch {
	case errors.Is(err, common.ErrEmailTaken), errors.Is(err, common.ErrPasswordsMismatch):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Message
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrIncorrectPassword):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrNotFoundOrUnauthorized):
		status, msg = http.StatusNotFound, msgPostNotFound
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrUploadTooLarge):
		status, msg = http.StatusBadRequest, msgImageTooLarge
	case errors.Is(err, common.ErrUnsupportedImage):
		status, msg = http.StatusBadRequest, msgImageNotImage
	default:
		h.logger.Error(c.Request.Context(), "request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
