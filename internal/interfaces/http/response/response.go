package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "projecthub.backend/internal/domain/errors"
)

// Success sends a success response wrapped in the data envelope the front
// end consumes: { "data": ... }.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// Error sends an error response as { "message": ... } with a non-2xx
// status. The message is surfaced verbatim to the end user.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}
