package middleware

import (
	"fmt"
	"time"

	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a fixed-window rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group request budgets.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"auth_register": {Limit: 5, Window: time.Hour},
		"auth_login":    {Limit: 10, Window: time.Minute},
		"ledger":        {Limit: 60, Window: time.Minute},
		"payments":      {Limit: 100, Window: time.Minute},
		"liquidation":   {Limit: 30, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// A store failure allows the request through in degraded mode rather than
// turning an infrastructure outage into a ledger outage.
func RateLimiter(store ports.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		allowed, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier determines the rate limit key source. Authenticated
// requests count per owner, anonymous ones per client IP.
func extractIdentifier(c *gin.Context) string {
	if ownerID, exists := c.Get(CtxOwnerID); exists {
		if id, ok := ownerID.(uuid.UUID); ok {
			return id.String()
		}
	}
	return c.ClientIP()
}
