package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/blobstore"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/handlers/accounts"
	"github.com/chris/twogether-backend/pkg/handlers/achievements"
	"github.com/chris/twogether-backend/pkg/handlers/coins"
	"github.com/chris/twogether-backend/pkg/handlers/couples"
	"github.com/chris/twogether-backend/pkg/handlers/moments"
	"github.com/chris/twogether-backend/pkg/handlers/photos"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/handlers/stats"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Store          storage.Storage
	DB             Pinger
	Authenticator  *auth.Authenticator
	Tokens         *auth.TokenIssuer
	Blobs          blobstore.Store
	Publisher      events.Publisher
	Logger         *slog.Logger
	CORSOrigin     string
	MetricsEnabled bool
	MaxUploadBytes int64
	Now            func() time.Time
}

// NewRouter builds the chi router for the whole API.
func NewRouter(deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Publisher == nil {
		deps.Publisher = &events.NoOpPublisher{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	accountsHandler := accounts.NewAccountsHandler(deps.Store, deps.Authenticator, deps.Tokens)
	couplesHandler := couples.NewCouplesHandler(deps.Store, deps.Publisher)
	couplesHandler.Now = deps.Now
	coinsHandler := coins.NewCoinsHandler(deps.Store, deps.Publisher)
	coinsHandler.Now = deps.Now
	momentsHandler := moments.NewMomentsHandler(deps.Store, deps.Publisher)
	momentsHandler.Now = deps.Now
	statsHandler := stats.NewStatsHandler(deps.Store)
	statsHandler.Now = deps.Now
	achievementsHandler := achievements.NewAchievementsHandler(deps.Store)
	photosHandler := photos.NewPhotosHandler(deps.Store, deps.Blobs, deps.MaxUploadBytes)
	photosHandler.Now = deps.Now

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.NewStructuredLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(deps.CORSOrigin))

	r.Get("/health", healthHandler(deps.DB))
	if deps.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", accountsHandler.Register)
		r.Post("/auth/login", accountsHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.Tokens))

			r.Get("/auth/me", accountsHandler.Me)
			r.Post("/couples/pairing-code", couplesHandler.RequestPairingCode)
			r.Post("/couples", couplesHandler.CreateCouple)
			r.Get("/couples", couplesHandler.GetCouple)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCouple(deps.Store))

				r.Get("/coins/balance", coinsHandler.GetBalance)
				r.Get("/coins/transactions", coinsHandler.ListTransactions)
				r.Post("/coins/transaction", coinsHandler.RecordTransaction)

				r.Post("/moments", momentsHandler.CreateMoment)
				r.Get("/moments", momentsHandler.ListMoments)
				r.Get("/moments/{id}", momentsHandler.GetMoment)

				r.Get("/stats", statsHandler.GetStats)
				r.Get("/stats/monthly", statsHandler.GetMonthly)
				r.Get("/stats/weekly", statsHandler.GetWeekly)

				r.Get("/achievements", achievementsHandler.ListAchievements)

				if deps.Blobs != nil {
					r.Post("/photos", photosHandler.UploadPhoto)
				}
				r.Get("/photos", photosHandler.ListPhotos)
			})
		})
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			respond.JSON(w, http.StatusOK, api.Health{Status: "ok", Database: "unknown"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			respond.JSON(w, http.StatusServiceUnavailable, api.Health{Status: "degraded", Database: "unreachable"})
			return
		}
		respond.JSON(w, http.StatusOK, api.Health{Status: "ok", Database: "connected"})
	}
}
