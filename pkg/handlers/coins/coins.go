package coins

import (
	"net/http"
	"strings"
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
	"github.com/oapi-codegen/runtime"
)

const (
	maxTagLength         = 50
	maxDescriptionLength = 500
)

// CoinsHandler holds the dependencies for ledger handlers.
type CoinsHandler struct {
	Store     storage.LedgerStore
	Publisher events.Publisher
	Now       func() time.Time
}

// NewCoinsHandler creates a new CoinsHandler.
func NewCoinsHandler(store storage.LedgerStore, publisher events.Publisher) *CoinsHandler {
	return &CoinsHandler{Store: store, Publisher: publisher, Now: time.Now}
}

// GetBalance returns the couple's derived balance.
func (h *CoinsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	couple := middleware.Couple(r.Context())
	balance, err := h.Store.GetBalance(r.Context(), couple.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiBalance(balance))
}

// ListTransactions returns the couple's ledger entries, newest first.
func (h *CoinsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		respond.Error(w, r, respond.BadRequest("invalid limit: "+err.Error()))
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	couple := middleware.Couple(r.Context())
	entries, err := h.Store.ListEntries(r.Context(), couple.ID, ledger.ClampLimit(n))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiEntries := make([]api.LedgerEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entries[i])
	}
	respond.JSON(w, http.StatusOK, apiEntries)
}

// RecordTransaction appends a manual earn or spend entry.
func (h *CoinsHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req api.NewLedgerEntry
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tag := ""
	if req.Tag != nil {
		tag = strings.TrimSpace(*req.Tag)
	}
	switch {
	case len([]rune(tag)) > maxTagLength:
		respond.Error(w, r, respond.Invalid("tag must be at most 50 characters"))
		return
	case tag == ledger.TagMoment || tag == ledger.TagAchievement:
		respond.Error(w, r, respond.Invalid("tag "+tag+" is reserved"))
		return
	case req.Description != nil && len([]rune(*req.Description)) > maxDescriptionLength:
		respond.Error(w, r, respond.Invalid("description must be at most 500 characters"))
		return
	}

	ctx := r.Context()
	couple := middleware.Couple(ctx)
	now := h.Now().UTC()
	entry := ledger.NewEntry(couple.ID, models.EntryKind(strings.ToLower(req.Kind)), req.Amount, tag, req.Description, now)

	// 1. Append the entry; the store enforces the balance check atomically.
	created, err := h.Store.RecordEntry(ctx, entry)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	metrics.LedgerEntries.WithLabelValues(string(created.Kind), created.Tag).Inc()
	metrics.CoinsMoved.WithLabelValues(string(created.Kind)).Add(float64(created.Amount))

	// 2. Read the balance after the write for the response.
	balance, err := h.Store.GetBalance(ctx, couple.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// 3. Notify subscribers of spends.
	if created.Kind == models.SPEND {
		events.Emit(ctx, h.Publisher, events.Event{
			Type:       events.CoinsSpent,
			CoupleID:   couple.ID,
			AccountID:  middleware.AccountID(ctx),
			OccurredAt: now,
			Payload:    map[string]any{"entryId": created.ID, "amount": created.Amount, "balance": balance.Balance},
		})
	}

	respond.JSON(w, http.StatusCreated, api.LedgerEntryResult{
		Entry:   mapping.ToApiLedgerEntry(created),
		Balance: mapping.ToApiBalance(balance),
	})
}
