package middleware

import (
	"github.com/gin-gonic/gin"

	"petspotter/internal/transport/http/response"
)

type ReadinessChecker interface {
	Ready() bool
}

// RequireReady fails fast with 503 while the store is not ready.
func RequireReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Ready() {
			response.Unavailable(c)
			return
		}
		c.Next()
	}
}
