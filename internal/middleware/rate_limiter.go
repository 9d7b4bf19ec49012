package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
)

// ipLimiter holds one token bucket per client IP.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu     sync.Mutex
	ips    map[string]*ipLimiter
	rps    rate.Limit
	burst  int
	detail string
}

func newLimiterPool(rps rate.Limit, burst int, detail string) *limiterPool {
	p := &limiterPool{
		ips:    make(map[string]*ipLimiter),
		rps:    rps,
		burst:  burst,
		detail: detail,
	}
	go p.purgeLoop()
	return p
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.ips[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// purgeLoop removes IPs not seen for 10 minutes so the map does not grow
// without bound.
func (p *limiterPool) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		p.mu.Lock()
		purged := 0
		for ip, entry := range p.ips {
			if entry.lastSeen.Before(cutoff) {
				delete(p.ips, ip)
				purged++
			}
		}
		remaining := len(p.ips)
		p.mu.Unlock()
		if purged > 0 {
			log.Debug().Int("purged", purged).Int("remaining", remaining).Msg("rate limiter pool purged")
		}
	}
}

func (p *limiterPool) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(p.detail))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to roughly 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	pool := newLimiterPool(rate.Limit(20.0/60.0), 5, "too many login attempts, try again in a minute")
	return pool.middleware()
}

// RateLimiter returns a general-purpose per-IP limiter for the whole API.
func RateLimiter(perMinute int) gin.HandlerFunc {
	pool := newLimiterPool(rate.Limit(float64(perMinute)/60.0), perMinute/4, "too many requests, slow down")
	return pool.middleware()
}
