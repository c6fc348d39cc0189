package achievements

// Metric identifies the counter a badge threshold is compared against.
type Metric string

const (
	TotalMoments Metric = "total_moments"
	ActiveDays   Metric = "active_days"
	ActiveMonths Metric = "active_months"
	CoinsEarned  Metric = "coins_earned"
)

// Badge is one entry of the catalogue.
type Badge struct {
	Kind        string
	Title       string
	Description string
	Metric      Metric
	Threshold   int64
}

// Catalogue lists every badge in evaluation order.
var Catalogue = []Badge{
	{Kind: "beginner_couple", Title: "Beginner Couple", Description: "Record your first moment together", Metric: TotalMoments, Threshold: 1},
	{Kind: "passionate_couple", Title: "Passionate Couple", Description: "Record 10 moments", Metric: TotalMoments, Threshold: 10},
	{Kind: "sweet_invincible", Title: "Sweet Invincible", Description: "Record 50 moments", Metric: TotalMoments, Threshold: 50},
	{Kind: "true_love_invincible", Title: "True Love Invincible", Description: "Record 100 moments", Metric: TotalMoments, Threshold: 100},
	{Kind: "weekly_lovers", Title: "Weekly Lovers", Description: "Be active on 7 different days", Metric: ActiveDays, Threshold: 7},
	{Kind: "stable_lovers", Title: "Stable Lovers", Description: "Be active in 3 different months", Metric: ActiveMonths, Threshold: 3},
	{Kind: "memory_collector", Title: "Memory Collector", Description: "Earn 1000 coins", Metric: CoinsEarned, Threshold: 1000},
	{Kind: "forever_sweet", Title: "Forever Sweet", Description: "Earn 5000 coins", Metric: CoinsEarned, Threshold: 5000},
}

// Snapshot holds the counters a couple is evaluated against.
type Snapshot struct {
	TotalMoments int64
	ActiveDays   int64
	ActiveMonths int64
	CoinsEarned  int64
}

// Value returns the snapshot counter for m.
func (s Snapshot) Value(m Metric) int64 {
	switch m {
	case TotalMoments:
		return s.TotalMoments
	case ActiveDays:
		return s.ActiveDays
	case ActiveMonths:
		return s.ActiveMonths
	case CoinsEarned:
		return s.CoinsEarned
	}
	return 0
}

// Evaluate returns the badges satisfied by snap that are not in unlocked, in catalogue order.
// Every predicate sees the same snapshot, so grants made during one pass never cascade.
func Evaluate(snap Snapshot, unlocked map[string]bool) []Badge {
	var earned []Badge
	for _, b := range Catalogue {
		if unlocked[b.Kind] {
			continue
		}
		if snap.Value(b.Metric) >= b.Threshold {
			earned = append(earned, b)
		}
	}
	return earned
}

// Lookup finds a badge by kind.
func Lookup(kind string) (Badge, bool) {
	for _, b := range Catalogue {
		if b.Kind == kind {
			return b, true
		}
	}
	return Badge{}, false
}
