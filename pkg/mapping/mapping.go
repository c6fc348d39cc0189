package mapping

import (
	"time"

	"github.com/chris/twogether-backend/pkg/achievements"
	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/stats"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(a *models.Account) api.Account {
	return api.Account{
		Id:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

// ToApiPairingCode converts a domain PairingCode model to an API PairingCode model.
func ToApiPairingCode(p *models.PairingCode) *api.PairingCode {
	if p == nil {
		return nil
	}
	return &api.PairingCode{Code: p.Code, ExpiresAt: p.ExpiresAt}
}

// ToApiDate converts a date-only timestamp.
func ToApiDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

// ToDomainDate converts an API date to midnight UTC.
func ToDomainDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	y, m, day := d.Time.Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// ToApiCouple converts a domain Couple with its members' names. names maps account ID to display name.
func ToApiCouple(c *models.Couple, names map[string]string, live *models.PairingCode) *api.Couple {
	out := &api.Couple{
		Id:              c.ID,
		MemberA:         api.Member{Id: c.MemberA, DisplayName: names[c.MemberA]},
		Paired:          c.Paired(),
		Name:            c.Name,
		AnniversaryDate: ToApiDate(c.AnniversaryDate),
		PairingCode:     ToApiPairingCode(live),
		CreatedAt:       c.CreatedAt,
	}
	if c.MemberB != nil {
		out.MemberB = &api.Member{Id: *c.MemberB, DisplayName: names[*c.MemberB]}
	}
	return out
}

// ToApiBalance converts a domain Balance model to an API Balance model.
func ToApiBalance(b *models.Balance) api.Balance {
	return api.Balance{Balance: b.Balance, TotalEarned: b.TotalEarned, TotalSpent: b.TotalSpent}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(e *models.LedgerEntry) api.LedgerEntry {
	return api.LedgerEntry{
		Id:           e.ID,
		Kind:         string(e.Kind),
		Amount:       e.Amount,
		SignedAmount: e.SignedAmount(),
		Tag:          e.Tag,
		Description:  e.Description,
		OccurredAt:   e.OccurredAt,
	}
}

// ToApiMoment converts a domain Moment model to an API Moment model.
func ToApiMoment(m *models.Moment) api.Moment {
	return api.Moment{
		Id:          m.ID,
		RecordedBy:  m.RecordedBy,
		MomentDate:  m.MomentDate,
		Notes:       m.Notes,
		Description: m.Description,
		Duration:    m.Duration,
		Location:    m.Location,
		Activity:    m.Activity,
		PhotoId:     m.PhotoID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainNewMoment converts an API NewMoment to a domain Moment.
// Note: ID and timestamps are filled in by the storage layer.
func ToDomainNewMoment(in *api.NewMoment, coupleID, accountID string, now time.Time) *models.Moment {
	m := &models.Moment{
		CoupleID:    coupleID,
		RecordedBy:  accountID,
		MomentDate:  now,
		Notes:       in.Notes,
		Description: in.Description,
		Duration:    in.Duration,
		Location:    in.Location,
		Activity:    in.Activity,
		CreatedAt:   now,
	}
	if in.MomentDate != nil {
		m.MomentDate = in.MomentDate.UTC()
	}
	if in.PhotoId != nil {
		id := in.PhotoId.String()
		m.PhotoID = &id
	}
	return m
}

// ToApiMomentResult converts the outcome of recording a moment.
func ToApiMomentResult(r *models.MomentResult) api.MomentResult {
	out := api.MomentResult{
		Moment:       ToApiMoment(r.Moment),
		Achievements: []api.Achievement{},
	}
	if r.Reward != nil {
		out.CoinsEarned = r.Reward.Amount
	}
	for i := range r.Achievements {
		a := r.Achievements[i]
		badge, _ := achievements.Lookup(a.BadgeKind)
		out.Achievements = append(out.Achievements, toApiAchievement(badge, &a))
	}
	return out
}

func toApiAchievement(b achievements.Badge, earned *models.Achievement) api.Achievement {
	out := api.Achievement{
		BadgeKind:   b.Kind,
		Title:       b.Title,
		Description: b.Description,
		Threshold:   b.Threshold,
	}
	if earned != nil {
		out.BadgeKind = earned.BadgeKind
		out.Unlocked = true
		at := earned.EarnedAt
		out.EarnedAt = &at
	}
	return out
}

// ToApiAchievements merges the catalogue with a couple's unlocked badges, in catalogue order.
func ToApiAchievements(unlocked []models.Achievement) []api.Achievement {
	byKind := make(map[string]*models.Achievement, len(unlocked))
	for i := range unlocked {
		byKind[unlocked[i].BadgeKind] = &unlocked[i]
	}
	out := make([]api.Achievement, 0, len(achievements.Catalogue))
	for _, b := range achievements.Catalogue {
		out = append(out, toApiAchievement(b, byKind[b.Kind]))
	}
	return out
}

// ToApiBuckets converts statistics buckets.
func ToApiBuckets(buckets []stats.Bucket) []api.PeriodCount {
	out := make([]api.PeriodCount, len(buckets))
	for i, b := range buckets {
		out[i] = api.PeriodCount{Period: b.Period, Count: b.Count}
	}
	return out
}

// ToApiStats converts a statistics summary.
func ToApiStats(s stats.Summary) api.Stats {
	return api.Stats{
		TotalMoments:  s.TotalMoments,
		ThisWeek:      s.ThisWeek,
		ThisMonth:     s.ThisMonth,
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		WeeklyAverage: s.WeeklyAverage,
		MonthlyData:   ToApiBuckets(s.Monthly),
	}
}

// ToApiPhoto converts a domain Photo model to an API Photo model.
func ToApiPhoto(p *models.Photo) api.Photo {
	return api.Photo{
		Id:          p.ID,
		FileName:    p.FileName,
		Caption:     p.Caption,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		MemoryDate:  ToApiDate(p.MemoryDate),
		Url:         p.URL,
		UploadedBy:  p.UploadedBy,
		UploadedAt:  p.UploadedAt,
	}
}
