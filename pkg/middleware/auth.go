package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	holderKey
	coupleKey
)

// accountHolder lets the logger see the account resolved further down the chain.
type accountHolder struct {
	id string
}

func withAccountHolder(ctx context.Context, h *accountHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the claims in the context.
func RequireAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				respond.Error(w, r, auth.ErrInvalidToken)
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			if h, ok := r.Context().Value(holderKey).(*accountHolder); ok {
				h.id = claims.Subject
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		}
		return http.HandlerFunc(fn)
	}
}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// AccountID returns the authenticated account, or "" outside RequireAuth.
func AccountID(ctx context.Context) string {
	if c, ok := ctx.Value(claimsKey).(*auth.Claims); ok {
		return c.Subject
	}
	return ""
}
