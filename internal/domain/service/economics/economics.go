// Package economics turns a selection snapshot and catalog prices into
// totals, an hourly rate and a verdict tier.
package economics

import (
	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/basket"
	"mining_hub/internal/domain/service/units"
)

const (
	// Verdict thresholds relative to the target rate. Boundaries inclusive.
	excellentFactor  = 1.25
	acceptableFactor = 0.85

	MinSessionMinutes = 1
	MaxSessionMinutes = 600
	MaxTargetPerHour  = 2_000_000_000
)

type Input struct {
	SessionMinutes int
	TargetPerHour  float64
}

// ClampInput normalizes user input the same way for every caller.
func ClampInput(in Input) Input {
	if in.SessionMinutes < MinSessionMinutes {
		in.SessionMinutes = MinSessionMinutes
	}
	if in.SessionMinutes > MaxSessionMinutes {
		in.SessionMinutes = MaxSessionMinutes
	}
	if in.TargetPerHour < 0 {
		in.TargetPerHour = 0
	}
	if in.TargetPerHour > MaxTargetPerHour {
		in.TargetPerHour = MaxTargetPerHour
	}
	return in
}

// Compute rebuilds the summary from scratch; there is no incremental state.
func Compute(snap basket.Snapshot, catalog *entity.Catalog, in Input) entity.Summary {
	in = ClampInput(in)

	summary := entity.Summary{
		Category: snap.Category,
		Verdict:  entity.VerdictUndetermined,
	}

	for _, key := range snap.SelectedKeys {
		qtyDisplay := snap.Quantities[key]
		if qtyDisplay <= 0 {
			continue
		}

		scuQty := units.ToCanonical(snap.Category, qtyDisplay)

		ore, ok := catalog.Get(key)
		if !ok || !ore.HasUsablePrice() {
			summary.MissingPrices = append(summary.MissingPrices, displayName(ore, key))
			continue
		}

		summary.Total += scuQty * *ore.UnitPrice
	}

	hours := float64(in.SessionMinutes) / 60
	if hours > 0 {
		summary.RatePerHour = summary.Total / hours
	}

	if in.TargetPerHour > 0 {
		delta := (summary.RatePerHour - in.TargetPerHour) / in.TargetPerHour * 100
		summary.DeltaPercent = &delta

		if summary.RatePerHour > 0 {
			ttt := in.TargetPerHour / summary.RatePerHour * 60
			summary.TimeToTargetMin = &ttt
		}
	}

	summary.Verdict = verdict(summary.Total, summary.RatePerHour, in.TargetPerHour)

	return summary
}

func verdict(total, ratePerHour, targetPerHour float64) entity.Verdict {
	if total <= 0 {
		return entity.VerdictUndetermined
	}

	if targetPerHour <= 0 {
		return entity.VerdictInformational
	}

	switch {
	case ratePerHour >= targetPerHour*excellentFactor:
		return entity.VerdictExcellent
	case ratePerHour >= targetPerHour*acceptableFactor:
		return entity.VerdictAcceptable
	default:
		return entity.VerdictAvoid
	}
}

func displayName(ore *entity.Ore, key string) string {
	if ore != nil && ore.Name != "" {
		return ore.Name
	}
	return key
}
