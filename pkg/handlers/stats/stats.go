package stats

import (
	"net/http"
	"time"

	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/middleware"
	streaks "github.com/chris/twogether-backend/pkg/stats"
	"github.com/chris/twogether-backend/pkg/storage"
)

// StatsHandler holds the dependencies for statistics handlers.
type StatsHandler struct {
	Store storage.MomentStore
	Now   func() time.Time
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store storage.MomentStore) *StatsHandler {
	return &StatsHandler{Store: store, Now: time.Now}
}

// GetStats returns totals, streaks and the monthly breakdown.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	couple := middleware.Couple(r.Context())
	// Streaks need the whole history.
	dates, err := h.Store.ListMomentDates(r.Context(), couple.ID, nil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiStats(streaks.Summarize(dates, h.Now().UTC())))
}

// GetMonthly returns moment counts per month over the trailing year.
func (h *StatsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	h.buckets(w, r, streaks.MonthlyWindowStart, streaks.Monthly)
}

// GetWeekly returns moment counts per ISO week over the trailing twelve weeks.
func (h *StatsHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	h.buckets(w, r, streaks.WeeklyWindowStart, streaks.Weekly)
}

func (h *StatsHandler) buckets(w http.ResponseWriter, r *http.Request,
	windowStart func(time.Time) time.Time,
	group func([]time.Time, time.Time, streaks.Order) []streaks.Bucket,
) {
	order, err := streaks.ParseOrder(r.URL.Query().Get("order"), streaks.Desc)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	now := h.Now().UTC()
	since := windowStart(now)
	couple := middleware.Couple(r.Context())
	dates, err := h.Store.ListMomentDates(r.Context(), couple.ID, &since)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiBuckets(group(dates, now, order)))
}
