package server

import (
	"strconv"
	"time"

	"github.com/btcforcorps/orangepages/internal/bizcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	contextUserIDKey     = "user_id"
	contextSessionTokKey = "session_token"
)

// AuthRequired resolves the session cookie into a user id and stores it
// on the gin context for downstream handlers.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := s.sessionStore.Resolve(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Set(contextSessionTokKey, token)

		if parsed, err := snowflake.ParseString(userID); err == nil {
			ctx := bizcontext.WithUserID(c.Request.Context(), parsed)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireStaff gates admin console routes behind the casbin policy for
// the given object and action. Must run after AuthRequired.
func (s *Server) RequireStaff(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(contextUserIDKey)
		if userID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.authz.Authorize(c.Request.Context(), "user:"+userID, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// ClaimRateLimit throttles benefit claim traffic per user with the redis
// token bucket. A disabled limiter passes everything through.
func (s *Server) ClaimRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		userID := c.GetString(contextUserIDKey)
		if userID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		res, err := s.limiter.AllowUser(c.Request.Context(), userID)
		if err != nil {
			s.log.Warn("claim rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			retry := res.RetryAfter
			if retry <= 0 {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Round(time.Second).Seconds())))
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
