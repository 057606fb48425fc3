package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps the error's taxonomy code and status onto the wire.
// Unclassified errors surface as SYSTEM_ERROR 500.
func RespondAPIError(c *gin.Context, err error) {
	RespondError(c, apierr.Status(err), apierr.Code(err), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
