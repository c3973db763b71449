package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"multilazos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter is a fixed-window counter per client IP. With a Redis client the
// counters live in Redis, so every instance behind a balancer shares one
// limit; without it, or while Redis is failing, they are kept in memory.
type Limiter struct {
	rdb     *redis.Client
	prefijo string
	limite  int
	ventana time.Duration

	mu        sync.Mutex
	locales   map[string]*ventanaLocal
	proxPurga time.Time
}

type ventanaLocal struct {
	count int
	fin   time.Time
}

// NewLimiter allows limite requests per ventana under the key prefix prefijo.
// A non-positive limite disables the limiter.
func NewLimiter(rdb *redis.Client, prefijo string, limite int, ventana time.Duration) *Limiter {
	return &Limiter{
		rdb:     rdb,
		prefijo: prefijo,
		limite:  limite,
		ventana: ventana,
		locales: make(map[string]*ventanaLocal),
	}
}

// Permitir counts one request for clave and reports whether it is within the
// limit, plus the time left in the current window.
func (l *Limiter) Permitir(ctx context.Context, clave string) (bool, time.Duration) {
	if l.limite <= 0 {
		return true, 0
	}
	if l.rdb != nil {
		n, restante, err := l.contarRedis(ctx, l.prefijo+":"+clave)
		if err == nil {
			return n <= int64(l.limite), restante
		}
		log.Warn().Err(err).Str("limiter", l.prefijo).Msg("rate limiter: redis unavailable, using local counters")
	}
	return l.contarLocal(clave)
}

func (l *Limiter) contarRedis(ctx context.Context, key string) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.ventana)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}

func (l *Limiter) contarLocal(clave string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.proxPurga) {
		for k, v := range l.locales {
			if now.After(v.fin) {
				delete(l.locales, k)
			}
		}
		l.proxPurga = now.Add(l.ventana)
	}

	v, ok := l.locales[clave]
	if !ok || now.After(v.fin) {
		v = &ventanaLocal{fin: now.Add(l.ventana)}
		l.locales[clave] = v
	}
	v.count++
	return v.count <= l.limite, v.fin.Sub(now)
}

// Middleware rejects requests over the limit with 429 and msg.
func (l *Limiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, restante := l.Permitir(c.Request.Context(), c.ClientIP())
		if !ok {
			segundos := int(restante.Round(time.Second) / time.Second)
			if segundos < 1 {
				segundos = 1
			}
			c.Header("Retry-After", strconv.Itoa(segundos))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter limits the whole API per client IP.
func RateLimiter(rdb *redis.Client, limite int, ventana time.Duration) gin.HandlerFunc {
	return NewLimiter(rdb, "ratelimit:api", limite, ventana).
		Middleware("Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// LoginRateLimiter limits login attempts per client IP within one minute.
func LoginRateLimiter(rdb *redis.Client, limite int) gin.HandlerFunc {
	return NewLimiter(rdb, "ratelimit:login", limite, time.Minute).
		Middleware("Demasiados intentos de login. Intente en 1 minuto.")
}
