// Package middleware provides HTTP middleware: authentication, request
// logging, and rate limiting.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelofalero/swse-architech/internal/auth"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

type principalKey struct{}

// WithPrincipal stores the request principal in the context.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the request principal from the context.
// ok is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// Authenticate resolves an optional bearer token to a request principal.
// An absent, malformed, or rejected token is not an error: the request
// proceeds anonymously and endpoints that need a principal refuse it
// themselves. The middleware never writes a response.
func Authenticate(tokens *auth.TokenService, secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.VerifyLocal(parts[1], secret)
			if err != nil {
				logger.Debug("bearer token rejected, proceeding anonymously")
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), claims.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
