// Package basket tracks the per-category ore selection: an ordered set of
// chosen keys, one active key and a quantity per key in the category's
// display unit.
package basket

import (
	"sync"

	"mining_hub/internal/domain/entity"
)

// MaxQuantity is the clamp ceiling for a single quantity entry.
const MaxQuantity = 1_000_000

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Basket is safe for concurrent use. Quantities survive key removal, so
// toggling an ore back in resumes its previous quantity.
type Basket struct {
	category entity.Category

	mu         sync.Mutex
	selected   []string
	activeKey  string
	quantities map[string]float64
}

func New(category entity.Category) *Basket {
	return &Basket{
		category:   category,
		quantities: make(map[string]float64),
	}
}

func (b *Basket) Category() entity.Category {
	return b.category
}

// Toggle adds key to the selection (and makes it active) or removes it when
// already selected. When the active key is removed, the last remaining
// selection becomes active. Never fails.
func (b *Basket) Toggle(key string) Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, k := range b.selected {
		if k != key {
			continue
		}

		b.selected = append(b.selected[:i], b.selected[i+1:]...)
		if b.activeKey == key {
			b.activeKey = lastOrEmpty(b.selected)
		}
		return ActionRemove
	}

	b.selected = append(b.selected, key)
	b.activeKey = key
	return ActionAdd
}

// SetQuantity clamps value to [0, MaxQuantity] and stores it. The key does
// not have to be currently selected.
func (b *Basket) SetQuantity(key string, value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.quantities[key] = clamp(value, 0, MaxQuantity)
}

func (b *Basket) Quantity(key string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.quantities[key]
}

// SetActive marks key active. No-op when key is not selected.
func (b *Basket) SetActive(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isSelected(key) {
		b.activeKey = key
	}
}

// ActiveKey resolves the active key lazily: when unset or no longer selected
// it falls back to the last selected key. Repeated reads are idempotent.
func (b *Basket) ActiveKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.activeKey != "" && b.isSelected(b.activeKey) {
		return b.activeKey
	}

	b.activeKey = lastOrEmpty(b.selected)
	return b.activeKey
}

// SelectedKeys returns the selection in insertion order.
func (b *Basket) SelectedKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, len(b.selected))
	copy(keys, b.selected)
	return keys
}

func (b *Basket) IsSelected(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.isSelected(key)
}

// Quantities returns a copy of the quantity map, positive entries only.
func (b *Basket) Quantities() map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]float64, len(b.quantities))
	for k, v := range b.quantities {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// TotalDisplayQuantity sums the quantities of selected keys in display units.
func (b *Basket) TotalDisplayQuantity() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sum float64
	for _, k := range b.selected {
		if v := b.quantities[k]; v > 0 {
			sum += v
		}
	}
	return sum
}

// Snapshot returns a consistent view of the selection for computation.
func (b *Basket) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, len(b.selected))
	copy(keys, b.selected)

	quantities := make(map[string]float64, len(b.quantities))
	for k, v := range b.quantities {
		quantities[k] = v
	}

	return Snapshot{
		Category:     b.category,
		SelectedKeys: keys,
		ActiveKey:    b.activeKey,
		Quantities:   quantities,
	}
}

// Reset clears the selection, the active key and all stored quantities.
func (b *Basket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selected = nil
	b.activeKey = ""
	b.quantities = make(map[string]float64)
}

type Snapshot struct {
	Category     entity.Category
	SelectedKeys []string
	ActiveKey    string
	Quantities   map[string]float64
}

func (b *Basket) isSelected(key string) bool {
	for _, k := range b.selected {
		if k == key {
			return true
		}
	}
	return false
}

func lastOrEmpty(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[len(keys)-1]
}

func clamp(v, min, max float64) float64 {
	if v != v || v < min { // NaN collapses to min
		return min
	}
	if v > max {
		return max
	}
	return v
}
