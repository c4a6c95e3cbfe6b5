// Package units is the single source of truth for quantity unit conversion.
// Ship mineables are entered in SCU, vehicle mineables in mSCU. Every quantity
// comparison and capacity check must go through these functions.
package units

import "mining_hub/internal/domain/entity"

// SCUToMSCU is the only place the 1000x factor lives.
const SCUToMSCU = 1000.0

// ToCanonical converts a quantity from the category's display unit to SCU.
func ToCanonical(category entity.Category, displayQty float64) float64 {
	if category == entity.VehicleMineable {
		return displayQty / SCUToMSCU
	}
	return displayQty
}

// ToDisplay converts a canonical SCU quantity to the category's display unit.
func ToDisplay(category entity.Category, scuQty float64) float64 {
	if category == entity.VehicleMineable {
		return scuQty * SCUToMSCU
	}
	return scuQty
}

func DisplayUnitLabel(category entity.Category) string {
	if category == entity.VehicleMineable {
		return "mSCU"
	}
	return "SCU"
}
