package report

// Tier is a rank label derived from cumulative points
type Tier string

const (
	TierGold   Tier = "Gold"
	TierSilver Tier = "Silver"
	TierBronze Tier = "Bronze"
)

// Tier thresholds, inclusive at the lower bound
const (
	goldThreshold   = 5000
	silverThreshold = 3000
)

// TierFor maps cumulative points to a tier
func TierFor(points float64) Tier {
	switch {
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// Title returns the display flavor name for the tier
func (t Tier) Title() string {
	switch t {
	case TierGold:
		return "Prefrontal Hero"
	case TierSilver:
		return "Control Master"
	default:
		return "Dopamine Beginner"
	}
}
