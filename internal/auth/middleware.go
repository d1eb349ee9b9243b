package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"go.uber.org/zap"
)

// Header names used by the front-end proxy when it authenticates with the API key
const (
	HeaderAPIKey   = "x-api-key"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	logger       *zap.Logger
}

func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(cfg),
		apiKey:       cfg.APIKey,
		logger:       logger,
	}
}

// Authenticate accepts either the API key with forwarded user headers, or
// a bearer token carrying name and role claims
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey := r.Header.Get(HeaderAPIKey); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			name := strings.TrimSpace(r.Header.Get(HeaderUserName))
			role, ok := ParseRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
			if name == "" || !ok {
				http.Error(w, "Unauthorized: X-User-Name and a valid X-User-Role are required", http.StatusUnauthorized)
				return
			}

			user := &UserContext{Name: name, Role: role, AuthType: "api_key"}
			m.authenticated(w, r, next, user)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		user, err := m.jwtValidator.ValidateToken(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}
		m.authenticated(w, r, next, user)
	})
}

func (m *Middleware) authenticated(w http.ResponseWriter, r *http.Request, next http.Handler, user *UserContext) {
	m.logger.Debug("request authenticated",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("auth_type", user.AuthType),
		zap.String("user", user.Name),
		zap.String("role", string(user.Role)),
	)
	next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
}

// RequireRole ensures the caller has one of the roles
func (m *Middleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden: no user context", http.StatusForbidden)
				return
			}
			if !user.HasAnyRole(roles...) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
