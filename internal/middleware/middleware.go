package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/handlers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/observability"
	"github.com/kofi-annor/stayhub/internal/services"
)

// RequestID assigns each request a unique ID, honoring one supplied by the
// client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger logs one line per completed request.
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("http request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// Metrics records request counts and latencies per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit enforces a per-client-IP token bucket. Idle entries are pruned
// so the map does not grow without bound.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
	)

	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, l := range limiters {
				if time.Since(l.lastSeen) > 3*time.Minute {
					delete(limiters, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		l, ok := limiters[ip]
		if !ok {
			l = &ipLimiter{limiter: rate.NewLimiter(rps, burst)}
			limiters[ip] = l
		}
		l.lastSeen = time.Now()
		mu.Unlock()

		if !l.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse("too many requests"))
			return
		}
		c.Next()
	}
}

// Auth authenticates the request from the access cookie. An expired access
// token is refreshed in place, once, using the refresh cookie: the refresh
// pair is rotated, new cookies are set and the request proceeds without the
// client ever seeing a 401. A malformed or forged access token is never
// refreshed; it clears the cookies and rejects outright.
func Auth(tm *auth.TokenManager, users *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := c.Cookie(handlers.AccessCookie)
		if err == nil && accessToken != "" {
			claims, verr := tm.VerifyAccess(accessToken)
			if verr == nil {
				auth.WithGin(c, auth.Context{UserID: claims.Subject, Role: claims.Role})
				c.Next()
				return
			}
			if !errors.Is(verr, auth.ErrTokenExpired) {
				handlers.ClearAuthCookies(c)
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("invalid session"))
				return
			}
			// expired: fall through to the refresh path
		}

		refreshToken, err := c.Cookie(handlers.RefreshCookie)
		if err != nil || refreshToken == "" {
			handlers.ClearAuthCookies(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("authentication required"))
			return
		}

		res, err := users.Refresh(c.Request.Context(), refreshToken)
		if err != nil {
			handlers.ClearAuthCookies(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("session expired, please log in again"))
			return
		}

		logger.Debug("access token refreshed", "user_id", res.User.ID)
		handlers.SetAuthCookies(c, res.Tokens, tm)
		auth.WithGin(c, auth.Context{UserID: res.User.ID, Role: res.User.Role})
		c.Next()
	}
}

// RequireRoles gates a route to the listed roles. Roles are flat: admin is
// not implicitly allowed where only hotel_owner is listed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("authentication required"))
			return
		}

		for _, role := range roles {
			if ac.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("insufficient permissions"))
	}
}
