package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers.
const (
	// Login, registration, payment.
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Everything else.
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps a per-identity bucket map with background cleanup.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewLimiter() *Limiter {
	l := &Limiter{visitors: make(map[string]*visitor)}
	go l.cleanup()
	return l
}

func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup removes stale entries so the map does not grow unbounded.
func (l *Limiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for key, v := range l.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(l.visitors, key)
			}
		}
		l.mu.Unlock()
	}
}

// Strict is the tier for credential and payment endpoints.
func (l *Limiter) Strict() gin.HandlerFunc {
	return l.handler(limitStrict, burstStrict, "strict")
}

// General is the default tier.
func (l *Limiter) General() gin.HandlerFunc {
	return l.handler(limitGeneral, burstGeneral, "general")
}

func (l *Limiter) handler(limit rate.Limit, burst int, tier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			identity = "ip:" + c.ClientIP()
		}

		// Same identity, separate quota per tier.
		key := identity + ":" + tier

		if !l.getVisitor(key, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}

		c.Next()
	}
}
