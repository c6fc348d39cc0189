package couples

import (
	"net/http"
	"strings"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/metrics"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
)

// CouplesHandler holds the dependencies for couple and pairing handlers.
type CouplesHandler struct {
	Store     storage.Storage
	Publisher events.Publisher
	Now       func() time.Time
}

// NewCouplesHandler creates a new CouplesHandler.
func NewCouplesHandler(store storage.Storage, publisher events.Publisher) *CouplesHandler {
	return &CouplesHandler{Store: store, Publisher: publisher, Now: time.Now}
}

// RequestPairingCode issues a pairing code for the caller's couple, creating the couple if needed.
func (h *CouplesHandler) RequestPairingCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.Store.RequestPairingCode(r.Context(), middleware.AccountID(r.Context()), h.Now().UTC())
	if err != nil {
		countFailure(err)
		respond.Error(w, r, err)
		return
	}

	metrics.PairingCodesIssued.Inc()
	respond.JSON(w, http.StatusCreated, mapping.ToApiPairingCode(code))
}

// CreateCouple redeems a pairing code when one is given, otherwise creates an unpaired couple.
func (h *CouplesHandler) CreateCouple(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCoupleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	accountID := middleware.AccountID(r.Context())
	now := h.Now().UTC()

	if req.PairingCode != nil && strings.TrimSpace(*req.PairingCode) != "" {
		couple, err := h.Store.RedeemPairingCode(r.Context(), accountID, *req.PairingCode, now)
		if err != nil {
			countFailure(err)
			respond.Error(w, r, err)
			return
		}

		// The couple is committed; the event is best effort.
		metrics.CouplesPaired.Inc()
		events.Emit(r.Context(), h.Publisher, events.Event{
			Type:       events.CouplePaired,
			CoupleID:   couple.ID,
			AccountID:  accountID,
			OccurredAt: now,
			Payload:    map[string]string{"memberA": couple.MemberA, "memberB": accountID},
		})
		h.writeCouple(w, r, http.StatusOK, couple)
		return
	}

	if req.Name != nil && len([]rune(*req.Name)) > 100 {
		respond.Error(w, r, respond.Invalid("name must be at most 100 characters"))
		return
	}
	couple, err := h.Store.CreateCouple(r.Context(), accountID, req.Name, mapping.ToDomainDate(req.AnniversaryDate), now)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeCouple(w, r, http.StatusCreated, couple)
}

// GetCouple returns the caller's couple with member names and any live pairing code.
func (h *CouplesHandler) GetCouple(w http.ResponseWriter, r *http.Request) {
	couple, err := h.Store.GetCoupleForAccount(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeCouple(w, r, http.StatusOK, couple)
}

func (h *CouplesHandler) writeCouple(w http.ResponseWriter, r *http.Request, status int, couple *models.Couple) {
	ctx := r.Context()

	// 1. Resolve display names for both seats.
	names := make(map[string]string, 2)
	members := []string{couple.MemberA}
	if couple.MemberB != nil {
		members = append(members, *couple.MemberB)
	}
	for _, id := range members {
		account, err := h.Store.GetAccount(ctx, id)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		names[id] = account.DisplayName
	}

	// 2. An unpaired couple may have a code waiting to be shared.
	var live *models.PairingCode
	if !couple.Paired() {
		code, err := h.Store.GetLivePairingCode(ctx, couple.ID, h.Now().UTC())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		live = code
	}

	respond.JSON(w, status, mapping.ToApiCouple(couple, names, live))
}

func countFailure(err error) {
	if status, detail := respond.Classify(err); status < http.StatusInternalServerError {
		metrics.PairingFailures.WithLabelValues(strings.ToLower(detail.Code)).Inc()
	}
}
