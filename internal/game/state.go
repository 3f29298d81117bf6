package game

import (
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// Progress holds the player's progression counters.
type Progress struct {
	PacksOpened      int            `json:"packsOpened"`
	UniqueCardsOwned int            `json:"uniqueCardsOwned"` // derived from inventory, cached
	PackInventory    map[string]int `json:"packInventory"`
}

// Core owns all mutable game state. There are no package-level
// globals; callers hold exactly one Core and serialize access to it.
type Core struct {
	catalog *catalog.Catalog
	rng     engine.Source
	log     *zap.Logger

	inventory   *Inventory
	progress    Progress
	expeditions [ExpeditionSlotCount]ExpeditionSlot
	fishing     FishingState
	sifting     SiftingState
	selection   map[VariantKey]int
	museum      map[string]string

	dirty bool
}

// New builds a Core over the given catalog with a fresh player state.
// src and log may be nil (defaults: time-seeded PCG, no-op logger).
func New(cat *catalog.Catalog, src engine.Source, log *zap.Logger) *Core {
	if src == nil {
		src = engine.NewSource()
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Core{
		catalog: cat,
		rng:     src,
		log:     log,
	}
	c.resetToDefaults()
	c.dirty = false
	return c
}

// resetToDefaults installs a brand-new player: empty collection, three
// basic packs to get started, idle minigames and expedition slots.
func (c *Core) resetToDefaults() {
	c.inventory = NewInventory()
	c.progress = Progress{
		PackInventory: map[string]int{"basic": 3},
	}
	for i := range c.expeditions {
		c.expeditions[i] = ExpeditionSlot{State: ExpeditionEmpty}
	}
	c.fishing = FishingState{Phase: FishingIdle}
	c.sifting = SiftingState{}
	c.selection = make(map[VariantKey]int)
	c.museum = make(map[string]string)
	c.markDirty()
}

// Dirty reports whether state changed since the last ClearDirty. The
// persistence layer saves and clears after every mutating operation.
func (c *Core) Dirty() bool { return c.dirty }

// ClearDirty acknowledges a completed save.
func (c *Core) ClearDirty() { c.dirty = false }

func (c *Core) markDirty() { c.dirty = true }

// Progress returns the progression counters.
func (c *Core) Progress() Progress {
	return Progress{
		PacksOpened:      c.progress.PacksOpened,
		UniqueCardsOwned: c.progress.UniqueCardsOwned,
		PackInventory:    copyPackCounts(c.progress.PackInventory),
	}
}

// PackCount returns how many unopened packs of the given type are held.
func (c *Core) PackCount(packID string) int {
	return c.progress.PackInventory[packID]
}

func (c *Core) grantPack(packID string, n int) {
	if c.progress.PackInventory == nil {
		c.progress.PackInventory = make(map[string]int)
	}
	c.progress.PackInventory[packID] += n
}

func (c *Core) refreshUniqueCount() {
	c.progress.UniqueCardsOwned = c.inventory.UniqueCardCount()
}

func copyPackCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Progress        Progress                            `json:"progress"`
	Inventory       []InventoryEntry                    `json:"inventory"`
	Expeditions     [ExpeditionSlotCount]ExpeditionSlot `json:"expeditions"`
	UnlockedRegions []string                            `json:"unlockedRegions"`
	Fishing         FishingState                        `json:"fishing"`
	Sifting         SiftingState                        `json:"sifting"`
	Museum          map[string]string                   `json:"museum"`
}

// Snapshot assembles the full plain-data state view.
func (c *Core) Snapshot() Snapshot {
	museum := make(map[string]string, len(c.museum))
	for k, v := range c.museum {
		museum[k] = v
	}
	return Snapshot{
		Progress:        c.Progress(),
		Inventory:       c.inventory.Entries(),
		Expeditions:     c.expeditions,
		UnlockedRegions: c.UnlockedRegions(),
		Fishing:         c.fishing,
		Sifting:         c.sifting,
		Museum:          museum,
	}
}
