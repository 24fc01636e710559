package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Richard-avalos/legendme-login-svc/internal/auth/token"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// Principal is the authenticated caller extracted from a valid access
// token.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// TokenValidator validates an access token and returns its claims.
type TokenValidator interface {
	ValidateAccess(tokenString string) (*token.Claims, error)
}

type AuthMiddleware struct {
	Tokens TokenValidator
}

func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// Authenticate resolves the Bearer token into a request principal. A
// missing or invalid token leaves the request anonymous and lets it
// proceed; authorization is a separate policy decision made downstream.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.Tokens.ValidateAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, Principal{
			UserID: claims.Subject,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
