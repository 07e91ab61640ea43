package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusFor maps an error kind to the HTTP status code returned to the caller.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it logs the error and responds with 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindConfiguration || appErr.Kind == apperror.KindInternal {
			log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		c.JSON(StatusFor(appErr.Kind), ErrorResponse{Error: appErr.Message, Kind: appErr.Kind.String()})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest sends a 400 for malformed input that never reached the service layer.
func BadRequest(c *gin.Context, message string, details error) {
	body := gin.H{"error": message, "kind": apperror.KindValidation.String()}
	if details != nil {
		body["details"] = details.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
