package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/apierror"
)

// ipLimiter is a sliding-window counter keyed by client IP.
type ipLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	ventana map[string]*ventanaIP
}

type ventanaIP struct {
	count int
	hasta time.Time
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	l := &ipLimiter{
		limit:   limit,
		window:  window,
		ventana: make(map[string]*ventanaIP),
	}
	go l.purgar()
	return l
}

// permitir counts a request and reports whether the IP is under the limit,
// returning the window end for the Retry-After header.
func (l *ipLimiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ventana[ip]
	if !ok || now.After(v.hasta) {
		v = &ventanaIP{hasta: now.Add(l.window)}
		l.ventana[ip] = v
	}
	v.count++
	return v.count <= l.limit, v.hasta
}

// purgar drops expired windows so IPs that never return do not accumulate.
func (l *ipLimiter) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purged := 0
		for ip, v := range l.ventana {
			if now.After(v.hasta) {
				delete(l.ventana, ip)
				purged++
			}
		}
		l.mu.Unlock()
		if purged > 0 {
			log.Debug().Int("entradas", purged).Msg("rate limiter: ventanas expiradas purgadas")
		}
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	limiter := newIPLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := limiter.permitir(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	limiter := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		ok, hasta := limiter.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
