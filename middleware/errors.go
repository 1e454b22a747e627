// Package middleware holds the gin middleware that every request passes
// through: request ids, logging, metrics, panic recovery, the error
// boundary, authentication, authorization and login rate limiting.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
)

// ErrorBody is the JSON envelope for every failed request.
type ErrorBody struct {
	Error   apperr.Kind `json:"error"`
	Message string      `json:"message"`
}

// Errors turns the last error attached to the gin context into the error
// envelope. Internal causes are logged and never sent to the client.
func Errors(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		writeError(c, log, last.Err)
	}
}

// Recovery converts a panic into an Internal error response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				_ = c.Error(err)
				c.Abort()
				if !c.Writer.Written() {
					writeError(c, log, err)
				}
			}
		}()
		c.Next()
	}
}

// NoRoute answers unknown paths with the error envelope.
func NoRoute(c *gin.Context) {
	_ = c.Error(apperr.NotFound("Route not found"))
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	appErr := apperr.From(err)
	fields := []zap.Field{
		zap.String("request_id", RequestIDFrom(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	switch appErr.Kind {
	case apperr.KindInternal:
		log.Error("request failed", fields...)
	case apperr.KindCanceled:
		log.Debug("client went away", fields...)
	}
	status := appErr.Status()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: appErr.Kind, Message: appErr.Message})
}
