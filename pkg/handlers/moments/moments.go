package moments

import (
	"net/http"
	"net/url"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/ledger"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/metrics"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Field limits for free-text moment fields, in characters.
var fieldLimits = []struct {
	name  string
	max   int
	value func(*api.NewMoment) *string
}{
	{"notes", 500, func(m *api.NewMoment) *string { return m.Notes }},
	{"description", 1000, func(m *api.NewMoment) *string { return m.Description }},
	{"duration", 100, func(m *api.NewMoment) *string { return m.Duration }},
	{"location", 200, func(m *api.NewMoment) *string { return m.Location }},
	{"activity", 100, func(m *api.NewMoment) *string { return m.Activity }},
}

// MomentsHandler holds the dependencies for moment handlers.
type MomentsHandler struct {
	Store     storage.MomentStore
	Publisher events.Publisher
	Now       func() time.Time
}

// NewMomentsHandler creates a new MomentsHandler.
func NewMomentsHandler(store storage.MomentStore, publisher events.Publisher) *MomentsHandler {
	return &MomentsHandler{Store: store, Publisher: publisher, Now: time.Now}
}

// CreateMoment records a moment, credits the reward and reports newly unlocked achievements.
func (h *MomentsHandler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	var req api.NewMoment
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	for _, f := range fieldLimits {
		if v := f.value(&req); v != nil && len([]rune(*v)) > f.max {
			respond.Error(w, r, respond.Invalid(f.name+" is too long"))
			return
		}
	}

	ctx := r.Context()
	couple := middleware.Couple(ctx)
	accountID := middleware.AccountID(ctx)
	now := h.Now().UTC()

	result, err := h.Store.RecordMoment(ctx, mapping.ToDomainNewMoment(&req, couple.ID, accountID, now))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// Everything below happens after commit.
	metrics.MomentsRecorded.Inc()
	metrics.LedgerEntries.WithLabelValues(string(models.EARN), ledger.TagMoment).Inc()
	metrics.CoinsMoved.WithLabelValues(string(models.EARN)).Add(float64(ledger.MomentReward))
	events.Emit(ctx, h.Publisher, events.Event{
		Type:       events.MomentRecorded,
		CoupleID:   couple.ID,
		AccountID:  accountID,
		OccurredAt: now,
		Payload:    map[string]string{"momentId": result.Moment.ID},
	})
	for _, a := range result.Achievements {
		metrics.AchievementsGranted.WithLabelValues(a.BadgeKind).Inc()
		metrics.LedgerEntries.WithLabelValues(string(models.EARN), ledger.TagAchievement).Inc()
		metrics.CoinsMoved.WithLabelValues(string(models.EARN)).Add(float64(ledger.AchievementReward))
		events.Emit(ctx, h.Publisher, events.Event{
			Type:       events.AchievementGranted,
			CoupleID:   couple.ID,
			AccountID:  accountID,
			OccurredAt: a.EarnedAt,
			Payload:    map[string]any{"badgeKind": a.BadgeKind, "milestoneValue": a.MilestoneValue},
		})
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiMomentResult(result))
}

// ListMoments returns the couple's moments newest first, filtered by date range and paged.
func (h *MomentsHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	couple := middleware.Couple(r.Context())
	list, err := h.Store.ListMoments(r.Context(), couple.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiMoments := make([]api.Moment, len(list))
	for i := range list {
		apiMoments[i] = mapping.ToApiMoment(&list[i])
	}
	respond.JSON(w, http.StatusOK, apiMoments)
}

// GetMoment returns one moment of the couple.
func (h *MomentsHandler) GetMoment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, storage.ErrMomentNotFound)
		return
	}

	couple := middleware.Couple(r.Context())
	m, err := h.Store.GetMoment(r.Context(), couple.ID, id.String())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiMoment(m))
}

func parseFilter(q url.Values) (storage.MomentFilter, error) {
	var filter storage.MomentFilter
	var limit, offset *int
	var from, to *openapi_types.Date

	params := []struct {
		name string
		dest any
	}{
		{"limit", &limit},
		{"offset", &offset},
		{"from", &from},
		{"to", &to},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return filter, respond.BadRequest("invalid " + p.name + ": " + err.Error())
		}
	}

	if limit != nil {
		filter.Limit = *limit
	}
	if offset != nil {
		if *offset < 0 {
			return filter, respond.Invalid("offset must not be negative")
		}
		filter.Offset = *offset
	}
	filter.From = mapping.ToDomainDate(from)
	if end := mapping.ToDomainDate(to); end != nil {
		// to is inclusive of the whole day.
		last := end.AddDate(0, 0, 1).Add(-time.Microsecond)
		filter.To = &last
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, respond.Invalid("from must not be after to")
	}
	return filter, nil
}
