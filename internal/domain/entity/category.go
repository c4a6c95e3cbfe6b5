package entity

import "fmt"

// Category is the closed set of mineable catalogs. Each category owns its own
// catalog, basket and capacity source.
type Category int

const (
	ShipMineable Category = iota
	VehicleMineable
)

const categoryCount = 2

func Categories() []Category {
	return []Category{ShipMineable, VehicleMineable}
}

func (c Category) String() string {
	switch c {
	case ShipMineable:
		return "ship"
	case VehicleMineable:
		return "vehicle"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

func (c Category) Valid() bool {
	return c >= 0 && int(c) < categoryCount
}

func ParseCategory(s string) (Category, error) {
	switch s {
	case "ship":
		return ShipMineable, nil
	case "vehicle":
		return VehicleMineable, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// VehicleVariant identifies a ground vehicle with a fixed mineral storage.
type VehicleVariant string

const (
	VehicleROC   VehicleVariant = "roc"
	VehicleROCDS VehicleVariant = "rocds"
)
