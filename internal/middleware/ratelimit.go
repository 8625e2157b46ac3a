package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/service-center/internal/httperr"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per authenticated user, or per client IP
// when no user is set yet.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = map[string]*visitor{}
		lastGC   = time.Now()
	)

	get := func(key string, now time.Time) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if now.Sub(lastGC) > limiterIdleTTL {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > limiterIdleTTL {
					delete(visitors, k)
				}
			}
			lastGC = now
		}

		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
			visitors[key] = v
		}
		v.lastSeen = now
		return v.limiter
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if id := c.GetUint(ContextUserID); id != 0 {
			key = "user:" + strconv.FormatUint(uint64(id), 10)
		}

		if !get(key, time.Now()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "rate_limited",
				Message: "Too many requests, slow down.",
			})
			return
		}
		c.Next()
	}
}
