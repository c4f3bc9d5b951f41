package middleware

import (
	"net/http"

	"merchant-api/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler translates typed request errors attached to the context into
// the wire envelope. Handlers attach errors with c.Error and abort.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if reqErr, ok := err.(*apierrors.RequestError); ok {
				logger.Warn("Request error",
					zap.String("status", reqErr.Status),
					zap.String("title", reqErr.Title),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(reqErr.HTTPStatus(), apierrors.Payload(reqErr))
				return
			}

			logger.Error("Unhandled error",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.JSON(http.StatusInternalServerError, apierrors.Payload(apierrors.NewInternalError()))
		}
	}
}

// RecoveryHandler is a panic recovery middleware
func RecoveryHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, apierrors.Payload(apierrors.NewInternalError()))
	})
}
