// Package ctxutil carries request-scoped values from gin into the
// context.Context handed to the application layer.
package ctxutil

import (
	"context"

	"store/api/response"
	"store/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context tagged with the gin request id,
// so logger.FromContext picks it up further down.
func WithRequestID(c *gin.Context) context.Context {
	return persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
