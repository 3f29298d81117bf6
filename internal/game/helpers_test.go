package game

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// newTestCore builds a core over the embedded catalog with a scripted
// or seeded random source.
func newTestCore(t *testing.T, src engine.Source) *Core {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	return New(cat, src, zap.NewNop())
}

// newStarterCore builds a core over a minimal hand-rolled catalog: one
// starter region with common and uncommon cards and a single pack type
// weighted {common: 90, uncommon: 10}.
func newStarterCore(t *testing.T, src engine.Source) *Core {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Card{
			{ID: "c1", Name: "Common One", Rarity: catalog.RarityCommon, Region: "meadow"},
			{ID: "c2", Name: "Common Two", Rarity: catalog.RarityCommon, Region: "meadow"},
			{ID: "c3", Name: "Common Three", Rarity: catalog.RarityCommon, Region: "meadow"},
			{ID: "u1", Name: "Uncommon One", Rarity: catalog.RarityUncommon, Region: "meadow"},
			{ID: "u2", Name: "Uncommon Two", Rarity: catalog.RarityUncommon, Region: "meadow"},
		},
		[]catalog.Pack{
			{ID: "basic", Name: "Basic Pack", Rarities: map[catalog.Rarity]float64{
				catalog.RarityCommon:   90,
				catalog.RarityUncommon: 10,
			}},
		},
		[]catalog.Region{
			{ID: "meadow", Name: "Meadow", Unlock: catalog.UnlockRule{Type: catalog.UnlockPacks, Value: 0}},
		},
	)
	if err != nil {
		t.Fatalf("catalog build failed: %v", err)
	}
	return New(cat, src, zap.NewNop())
}

// give seeds the collection directly, bypassing pack openings.
func give(c *Core, cardID string, art int, foil Foil, count int) {
	c.inventory.Add(VariantKey{CardID: cardID, Art: art, Foil: foil}, count)
	c.refreshUniqueCount()
}
