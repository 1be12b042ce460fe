package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"learnloop/internal/models"
	"learnloop/internal/security"
	"learnloop/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey       ContextKey = "user"
	KidSessionContextKey ContextKey = "kid"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	kidTokens   *security.KidTokenIssuer
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, kidTokens *security.KidTokenIssuer, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		kidTokens:   kidTokens,
		limiter:     limiter,
	}
}

// RequireAuth requires a valid parent session and puts the user in context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.parentFromRequest(w, r)
		if user == nil {
			respondError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireKidAuth requires a valid kid token and puts the session in context
func (m *Middleware) RequireKidAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kid := m.kidFromRequest(w, r)
		if kid == nil {
			respondError(w, http.StatusUnauthorized, "kid sign-in required", nil)
			return
		}
		ctx := context.WithValue(r.Context(), KidSessionContextKey, kid)
		next(w, r.WithContext(ctx))
	}
}

// RequireAnyAuth accepts either a parent session or a kid token. Handlers
// behind it check the context for whichever identity is present and scope
// child access accordingly.
func (m *Middleware) RequireAnyAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := m.parentFromRequest(w, r); user != nil {
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next(w, r.WithContext(ctx))
			return
		}
		if kid := m.kidFromRequest(w, r); kid != nil {
			ctx := context.WithValue(r.Context(), KidSessionContextKey, kid)
			next(w, r.WithContext(ctx))
			return
		}
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
	}
}

func (m *Middleware) parentFromRequest(w http.ResponseWriter, r *http.Request) *models.User {
	cookie, err := r.Cookie(security.SessionCookieName)
	if err != nil {
		return nil
	}
	user, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		http.SetCookie(w, security.ExpiredCookie(r, security.SessionCookieName))
		return nil
	}
	return user
}

// kidFromRequest reads the kid token from the cookie or an Authorization
// bearer header. Kid tokens are client-asserted; they only ever scope a
// request to the child they name.
func (m *Middleware) kidFromRequest(w http.ResponseWriter, r *http.Request) *models.KidSession {
	token := ""
	if cookie, err := r.Cookie(security.KidTokenCookieName); err == nil {
		token = cookie.Value
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	}
	if token == "" {
		return nil
	}

	kid, err := m.kidTokens.Verify(token)
	if err != nil {
		http.SetCookie(w, security.ExpiredCookie(r, security.KidTokenCookieName))
		return nil
	}
	return kid
}

// RateLimit throttles by client address
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many attempts, slow down", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the parent from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetKidFromContext retrieves the kid session from the request context
func GetKidFromContext(ctx context.Context) *models.KidSession {
	kid, ok := ctx.Value(KidSessionContextKey).(*models.KidSession)
	if !ok {
		return nil
	}
	return kid
}
