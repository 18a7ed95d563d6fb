package api

import (
	"net/http"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/gin-gonic/gin"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeValidation:   http.StatusBadRequest,
	apperr.CodeNotFound:     http.StatusNotFound,
	apperr.CodeConflict:     http.StatusConflict,
	apperr.CodeInvalidState: http.StatusUnprocessableEntity,
	apperr.CodeInternal:     http.StatusInternalServerError,
}

// writeError renders err as {"error", "code"} with the status of its code.
func writeError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	message := apperr.Message(err)
	if status == http.StatusInternalServerError {
		logging.Error("request failed", "path", c.FullPath(), "method", c.Request.Method, "error", err)
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// bindJSON decodes the body into dst and reports a validation error when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, apperr.New(apperr.CodeValidation, "invalid request body: "+err.Error(), err))
		return false
	}
	return true
}

func respond(c *gin.Context, status int, body any, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, body)
}
