package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pokebox/pokebox/internal/server/auth"
)

const (
	userIDContextKey = "userID"

	// Identifier used when the forwarded-address header is absent.
	defaultLimitKey = "default"
)

// rateLimitMiddleware gates every request through the fixed-window counter,
// keyed by the forwarded address. The standard rate-limit headers are set on
// every response, allowed or not.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Forwarded-For")
		if key == "" {
			key = defaultLimitKey
		}

		res := s.limiter.Allow(key)

		resetSeconds := int(time.Until(res.Reset).Round(time.Second).Seconds())
		if resetSeconds < 0 {
			resetSeconds = 0
		}

		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(resetSeconds))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(resetSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"message": "Too many requests, please try again later."})
			return
		}

		c.Next()
	}
}

// authMiddleware verifies the bearer token on protected routes and stores the
// token's subject in the request context. Verification happens before the
// wrapped handler runs; tokens are stateless and expire by time only.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "You are unauthorized"})
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(h, "Bearer "), s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "You are unauthorized"})
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// userID returns the authenticated caller's id placed by authMiddleware.
func userID(c *gin.Context) string {
	v, _ := c.Get(userIDContextKey)
	id, _ := v.(string)
	return id
}
