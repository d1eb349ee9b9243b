package auth

import (
	"context"

	"github.com/toiture-lv/quote-api/internal/domain"
)

// UserContext holds the authenticated caller
type UserContext struct {
	Name string
	Role domain.Role
	// AuthType is "api_key" or "jwt"
	AuthType string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// ActorFromContext returns the acting user passed to workflow operations.
// The zero actor is returned when the request is not authenticated.
func ActorFromContext(ctx context.Context) domain.Actor {
	user, ok := FromContext(ctx)
	if !ok {
		return domain.Actor{}
	}
	return user.Actor()
}

// Actor converts the caller into a workflow actor
func (u *UserContext) Actor() domain.Actor {
	return domain.Actor{User: u.Name, Role: u.Role}
}

// HasAnyRole checks if the caller has one of the given roles
func (u *UserContext) HasAnyRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ParseRole accepts the roles a caller may present. System is reserved for jobs.
func ParseRole(s string) (domain.Role, bool) {
	switch r := domain.Role(s); r {
	case domain.RoleAdmin, domain.RoleEstimator:
		return r, true
	}
	return "", false
}
