package achievements

import (
	"net/http"

	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/storage"
)

// AchievementsHandler serves the badge catalogue with the couple's unlock state.
type AchievementsHandler struct {
	Store storage.AchievementReader
}

// NewAchievementsHandler creates a new AchievementsHandler.
func NewAchievementsHandler(store storage.AchievementReader) *AchievementsHandler {
	return &AchievementsHandler{Store: store}
}

// ListAchievements returns every catalogue badge in catalogue order.
func (h *AchievementsHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	couple := middleware.Couple(r.Context())
	unlocked, err := h.Store.ListAchievements(r.Context(), couple.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiAchievements(unlocked))
}
