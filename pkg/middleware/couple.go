package middleware

import (
	"context"
	"net/http"

	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/models"
)

// CoupleLookup resolves the couple of an account.
type CoupleLookup interface {
	GetCoupleForAccount(ctx context.Context, accountID string) (*models.Couple, error)
}

// RequireCouple loads the authenticated account's couple. Accounts without one get 404.
// It must run after RequireAuth.
func RequireCouple(store CoupleLookup) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			accountID := AccountID(r.Context())
			if accountID == "" {
				respond.Error(w, r, auth.ErrInvalidToken)
				return
			}
			couple, err := store.GetCoupleForAccount(r.Context(), accountID)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCouple(r.Context(), couple)))
		}
		return http.HandlerFunc(fn)
	}
}

// WithCouple stores the resolved couple in ctx.
func WithCouple(ctx context.Context, couple *models.Couple) context.Context {
	return context.WithValue(ctx, coupleKey, couple)
}

// Couple returns the couple stored by RequireCouple, or nil.
func Couple(ctx context.Context) *models.Couple {
	c, _ := ctx.Value(coupleKey).(*models.Couple)
	return c
}
