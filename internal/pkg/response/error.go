package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error sends a JSON error response.
// An AppError is reported with its own status and message. Anything else is
// logged and reported as a generic 500 so driver errors never reach the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest sends a 400 with an optional details string (usually a binding error).
func BadRequest(c *gin.Context, message string, details error) {
	resp := ErrorResponse{Error: message}
	if details != nil {
		resp.Details = details.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
