package game

import "sort"

// Foil is the foil treatment of an owned copy.
type Foil string

const (
	FoilNormal Foil = "normal"
	FoilShiny  Foil = "foil"
)

// VariantKey identifies a distinct collectible: copies stack only when
// card id, art variant and foil treatment all match.
type VariantKey struct {
	CardID string `json:"card"`
	Art    int    `json:"art"` // 0 base, 1-2 alternate art
	Foil   Foil   `json:"foil"`
}

// InventoryEntry is one stack with its count.
type InventoryEntry struct {
	VariantKey
	Count int `json:"count"`
}

// Inventory is the card collection: stacked counts keyed by variant.
type Inventory struct {
	counts map[VariantKey]int
}

// NewInventory returns an empty collection.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[VariantKey]int)}
}

// Add stacks n copies of the variant.
func (inv *Inventory) Add(k VariantKey, n int) {
	if n <= 0 {
		return
	}
	inv.counts[k] += n
}

// Remove unstacks n copies, flooring at zero. The entry itself is kept
// even at zero; conversion rules never drive a stack below one anyway.
func (inv *Inventory) Remove(k VariantKey, n int) {
	if n <= 0 {
		return
	}
	if inv.counts[k] < n {
		inv.counts[k] = 0
		return
	}
	inv.counts[k] -= n
}

// Count returns the stack size for a variant.
func (inv *Inventory) Count(k VariantKey) int {
	return inv.counts[k]
}

// OwnsCard reports whether any variant of the card is owned.
func (inv *Inventory) OwnsCard(cardID string) bool {
	for k, n := range inv.counts {
		if n > 0 && k.CardID == cardID {
			return true
		}
	}
	return false
}

// OwnedCardSet returns the set of owned card ids, variant-independent.
func (inv *Inventory) OwnedCardSet() map[string]bool {
	owned := make(map[string]bool)
	for k, n := range inv.counts {
		if n > 0 {
			owned[k.CardID] = true
		}
	}
	return owned
}

// UniqueCardCount counts distinct owned card ids, ignoring variants.
func (inv *Inventory) UniqueCardCount() int {
	return len(inv.OwnedCardSet())
}

// Entries lists all stacks in a deterministic order.
func (inv *Inventory) Entries() []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(inv.counts))
	for k, n := range inv.counts {
		entries = append(entries, InventoryEntry{VariantKey: k, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CardID != b.CardID {
			return a.CardID < b.CardID
		}
		if a.Art != b.Art {
			return a.Art < b.Art
		}
		return a.Foil < b.Foil
	})
	return entries
}
