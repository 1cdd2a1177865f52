package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/wandile0157/smartdoc-ai-backend/internal/clients"
)

// userContextKey is where auth middleware stores the resolved user.
const userContextKey = "smartdoc.user"

// Recovery returns a middleware that recovers from panics, logs the stack
// trace, and returns a 500 so the server keeps serving.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"panic", r,
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(
					"Internal server error",
					"An unexpected error occurred. Please try again later.",
				))
			}
		}()
		c.Next()
	}
}

// Tracing injects OTEL trace context into each request.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// RequestLogger emits one structured log line per request with method, path,
// status and latency.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// CORS gates cross-origin access to the configured origin allow-list.
// Credentials are allowed, so origins must be listed explicitly.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// TokenVerifier is the subset of *clients.Supabase used by the auth
// middleware. A nil verifier means authentication is not configured.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*clients.User, error)
}

// OptionalAuth resolves a bearer token when one is present. Requests
// without a token, with an invalid token, or on an unconfigured deployment
// proceed anonymously.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" || verifier == nil {
			c.Next()
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "optional auth rejected", "error", err)
			c.Next()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token: 401 for a
// missing or rejected token, 503 when authentication is not configured or
// the token could not be verified.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				errorBody("Authentication is not configured", ""))
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorBody("Not authenticated", ""))
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			// 401 only for a token the auth service actually rejected.
			// Anything else (network failure, open breaker) means we could
			// not verify, which is a service problem, not a caller problem.
			if errors.Is(err, clients.ErrUnauthorized) {
				c.Header("WWW-Authenticate", "Bearer")
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					errorBody("Invalid authentication credentials", ""))
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				errorBody("Could not verify token", err.Error()))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated user, if any.
func currentUser(c *gin.Context) (*clients.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*clients.User)
	return user, ok
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
