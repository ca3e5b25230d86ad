package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Every error answer uses the same body so clients only need one decoder
type errorBody struct {
	Path             string            `json:"path"`
	Timestamp        int64             `json:"timestamp"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UnixMilli(),
		Message:   message,
	})
}

func failValidation(c *gin.Context, errs map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
		Path:             c.Request.URL.Path,
		Timestamp:        time.Now().UnixMilli(),
		Message:          "Validation Failure",
		ValidationErrors: errs,
	})
}
