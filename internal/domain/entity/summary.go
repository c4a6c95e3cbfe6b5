package entity

// Verdict classifies a computed rate against the player's target.
type Verdict string

const (
	VerdictExcellent     Verdict = "excellent"
	VerdictAcceptable    Verdict = "acceptable"
	VerdictAvoid         Verdict = "avoid"
	VerdictInformational Verdict = "informational"
	VerdictUndetermined  Verdict = "undetermined"
)

// rank orders verdicts from worst to best for the tiers that judge a rate.
// Informational and Undetermined sit outside the ordering.
func (v Verdict) rank() int {
	switch v {
	case VerdictAvoid:
		return 0
	case VerdictAcceptable:
		return 1
	case VerdictExcellent:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether v is the same tier as other or a better one.
func (v Verdict) AtLeast(other Verdict) bool {
	return v.rank() >= other.rank()
}

// Summary is the output of one economics computation. It is rebuilt from
// scratch on every input change.
type Summary struct {
	Category     Category
	Total        float64 // aUEC
	RatePerHour  float64 // aUEC per hour, 0 when session length is 0
	DeltaPercent *float64
	// TimeToTargetMin is how many minutes at the current rate earn one hour
	// of target income. Nil unless both rate and target are positive.
	TimeToTargetMin *float64
	Verdict         Verdict
	// MissingPrices lists display names of selected ores with quantity > 0
	// whose catalog price is unusable. Not an error: those contribute 0.
	MissingPrices []string
}

// CapacityCheck is the capacity advisor's outcome in display units.
type CapacityCheck struct {
	CapacityDisplay *float64
	Exceeded        bool
}
