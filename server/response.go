package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/logger"
)

// RespondWithError classifies err, logs it and writes the error envelope.
// It is the only place an error status is written.
func RespondWithError(c *gin.Context, err error) {
	status, body := errors.Classify(err)

	fields := map[string]interface{}{
		"status": status,
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	fields[logger.FieldErrorCode] = string(errors.CodeOf(err))
	if appErr, ok := errors.AsAppError(err); ok {
		if len(appErr.Fields) > 0 {
			fields["fields"] = appErr.FieldNames()
		}
		for k, v := range appErr.Details {
			fields[k] = v
		}
	}

	log := logger.WithComponent("server").WithContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		if err != nil {
			fields["error"] = err.Error()
		}
		log.Error("Request failed", fields)
	} else {
		log.Debug("Request rejected", fields)
	}

	c.AbortWithStatusJSON(status, body)
}

// ErrorHandler writes the last error recorded with c.Error when nothing
// has been written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondWithError(c, c.Errors.Last().Err)
	}
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 response with data as the body.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"itens"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
