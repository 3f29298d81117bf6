package game

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

func TestResolveByRarityStraightPool(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))

	card, res, err := c.resolveByRarity(catalog.RarityCommon)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if card.Rarity != catalog.RarityCommon {
		t.Errorf("expected a common card, got %s", card.Rarity)
	}
	if card.Region != "meadow" {
		t.Errorf("fresh player candidates must come from meadow, got %s", card.Region)
	}
	if res.CommonFallback {
		t.Error("straight pool resolution must not flag the common fallback")
	}
}

func TestResolveByRarityCommonFallback(t *testing.T) {
	// Fresh player: only meadow is unlocked and meadow has no special
	// cards, so a special request falls back to unlocked commons.
	c := newTestCore(t, engine.NewSequence(0))

	card, res, err := c.resolveByRarity(catalog.RaritySpecial)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !res.CommonFallback {
		t.Error("expected the common fallback to fire")
	}
	if card.Rarity != catalog.RarityCommon {
		t.Errorf("fallback must yield a common card, got %s", card.Rarity)
	}
}

func TestResolveByRarityUniformChoice(t *testing.T) {
	c := newTestCore(t, engine.NewSeededSource(3))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		card, _, err := c.resolveByRarity(catalog.RarityCommon)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		seen[card.ID] = true
	}
	// All four meadow commons should show up across 200 uniform picks.
	if len(seen) < 4 {
		t.Errorf("expected all meadow commons to appear, saw %v", seen)
	}
}

func TestResolveWildLockedRegionSubstitutes(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0, 0))

	card, res, ok := c.resolveWild("volcano")
	if !ok {
		t.Fatal("expected a card")
	}
	if !res.RegionSubstituted {
		t.Error("expected the locked region to be substituted")
	}
	if res.Region != "meadow" {
		t.Errorf("substitute must be the first unlocked region, got %s", res.Region)
	}
	if card.Region != "meadow" {
		t.Errorf("card must come from the substitute region, got %s", card.Region)
	}
	// Zero draw on the wild table lands on its rarest entry.
	if card.Rarity != catalog.RarityLegendary {
		t.Errorf("zero wild draw should yield legendary, got %s", card.Rarity)
	}
}

func TestResolveWildUnlockedRegion(t *testing.T) {
	c := newTestCore(t, engine.NewPercentSequence(95, 50))
	c.progress.PacksOpened = 10 // riverbed unlocked

	card, res, ok := c.resolveWild("riverbed")
	if !ok {
		t.Fatal("expected a card")
	}
	if res.RegionSubstituted {
		t.Error("unlocked region must not be substituted")
	}
	if card.Region != "riverbed" {
		t.Errorf("expected riverbed card, got %s", card.Region)
	}
	if card.Rarity != catalog.RarityCommon {
		t.Errorf("draw of 95 should yield common, got %s", card.Rarity)
	}
}

func TestResolveWildRarityMissFallsBackToRegion(t *testing.T) {
	// Region with cards but no legendary at the rolled tier.
	cat, err := catalog.New(
		[]catalog.Card{
			{ID: "c1", Name: "Common", Rarity: catalog.RarityCommon, Region: "meadow"},
			{ID: "c2", Name: "Other Common", Rarity: catalog.RarityCommon, Region: "meadow"},
		},
		[]catalog.Pack{
			{ID: "basic", Name: "Basic", Rarities: map[catalog.Rarity]float64{catalog.RarityCommon: 100}},
		},
		[]catalog.Region{
			{ID: "meadow", Name: "Meadow", Unlock: catalog.UnlockRule{Type: catalog.UnlockPacks, Value: 0}},
		},
	)
	if err != nil {
		t.Fatalf("catalog build failed: %v", err)
	}
	c := New(cat, engine.NewPercentSequence(0, 0), zap.NewNop())

	card, res, ok := c.resolveWild("meadow")
	if !ok {
		t.Fatal("expected a card")
	}
	if !res.AnyRarityFallback {
		t.Error("expected the any-rarity fallback to fire for an empty tier pool")
	}
	if card.Region != "meadow" {
		t.Errorf("fallback stays region-scoped, got %s", card.Region)
	}
}

func TestResolveWildEmptyRegionYieldsNoReward(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Card{
			{ID: "c1", Name: "Common", Rarity: catalog.RarityCommon, Region: "meadow"},
		},
		[]catalog.Pack{
			{ID: "basic", Name: "Basic", Rarities: map[catalog.Rarity]float64{catalog.RarityCommon: 100}},
		},
		[]catalog.Region{
			{ID: "meadow", Name: "Meadow", Unlock: catalog.UnlockRule{Type: catalog.UnlockPacks, Value: 0}},
			{ID: "barrens", Name: "Barrens", Unlock: catalog.UnlockRule{Type: catalog.UnlockPacks, Value: 0}},
		},
	)
	if err != nil {
		t.Fatalf("catalog build failed: %v", err)
	}
	c := New(cat, engine.NewSequence(0), zap.NewNop())

	if _, _, ok := c.resolveWild("barrens"); ok {
		t.Error("a region with zero catalog entries must yield no reward")
	}
}
