package game

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
)

// conversionPoints maps each rarity to its duplicate conversion value.
// Specials are keepsakes and convert to nothing on purpose.
var conversionPoints = map[catalog.Rarity]int{
	catalog.RaritySpecial:   0,
	catalog.RarityCommon:    1,
	catalog.RarityUncommon:  3,
	catalog.RarityRare:      10,
	catalog.RarityMythic:    30,
	catalog.RarityLegendary: 100,
}

// ConversionPointValue returns the per-copy point value of a rarity.
func ConversionPointValue(r catalog.Rarity) int {
	return conversionPoints[r]
}

// PackThreshold pairs a pack reward with the points needed to earn it.
type PackThreshold struct {
	Pack   string `json:"pack"`
	Points int    `json:"points"`
}

// PackThresholds lists conversion rewards best-first; the first
// threshold the score meets or exceeds wins.
var PackThresholds = []PackThreshold{
	{Pack: "collector", Points: 1000},
	{Pack: "deluxe", Points: 250},
	{Pack: "advanced", Points: 100},
	{Pack: "explorer", Points: 30},
	{Pack: "basic", Points: 10},
}

// BestReward maps a point total to the best qualifying pack, or
// ok=false below the lowest threshold.
func BestReward(points int) (string, bool) {
	for _, t := range PackThresholds {
		if points >= t.Points {
			return t.Pack, true
		}
	}
	return "", false
}

// SelectionEntry is one selected stack with its chosen count.
type SelectionEntry struct {
	VariantKey
	Count int `json:"count"`
}

// ToggleConversionSelection cycles how many copies of a stack are
// selected: each call adds one copy up to ownedCount-1, then wraps
// back to none. Only stacks holding duplicates are selectable; the
// cap guarantees at least one copy always survives conversion.
func (c *Core) ToggleConversionSelection(key VariantKey) (int, error) {
	owned := c.inventory.Count(key)
	if owned <= 1 {
		return 0, fmt.Errorf("select %s: %w", key.CardID, ErrNotDuplicate)
	}

	selected := c.selection[key] + 1
	if selected > owned-1 {
		delete(c.selection, key)
		return 0, nil
	}
	c.selection[key] = selected
	return selected, nil
}

// ClearConversionSelection drops the ephemeral selection, as happens
// on navigating away from the converter.
func (c *Core) ClearConversionSelection() {
	c.selection = make(map[VariantKey]int)
}

// ConversionSelection lists the current selection deterministically.
func (c *Core) ConversionSelection() []SelectionEntry {
	entries := make([]SelectionEntry, 0, len(c.selection))
	for k, n := range c.selection {
		entries = append(entries, SelectionEntry{VariantKey: k, Count: n})
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

// ConversionScore sums the selection's points: per-rarity value times
// selected count, linear in the counts.
func (c *Core) ConversionScore() int {
	points := 0
	for key, count := range c.selection {
		card, ok := c.catalog.Card(key.CardID)
		if !ok {
			continue
		}
		points += conversionPoints[card.Rarity] * count
	}
	return points
}

// ConversionPreview is the converter's read-only quote.
type ConversionPreview struct {
	Points    int    `json:"points"`
	Pack      string `json:"pack,omitempty"`
	Qualifies bool   `json:"qualifies"`
}

// PreviewConversion quotes the current selection without mutating it.
func (c *Core) PreviewConversion() ConversionPreview {
	points := c.ConversionScore()
	pack, ok := BestReward(points)
	return ConversionPreview{Points: points, Pack: pack, Qualifies: ok}
}

// ConfirmConversion spends the selected duplicates for the best
// qualifying pack. Rejected with no mutation when the selection does
// not reach any threshold. Counts are re-clamped against the live
// inventory so no stack can ever drop below one copy.
func (c *Core) ConfirmConversion() (string, error) {
	preview := c.PreviewConversion()
	if !preview.Qualifies {
		return "", ErrNoQualifyingReward
	}

	for key, count := range c.selection {
		limit := c.inventory.Count(key) - 1
		if count > limit {
			count = limit
		}
		if count <= 0 {
			continue
		}
		c.inventory.Remove(key, count)
	}
	c.grantPack(preview.Pack, 1)
	c.ClearConversionSelection()
	c.refreshUniqueCount()
	c.markDirty()

	c.log.Debug("conversion confirmed",
		zap.Int("points", preview.Points),
		zap.String("pack", preview.Pack))
	return preview.Pack, nil
}
