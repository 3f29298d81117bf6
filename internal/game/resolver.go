package game

import (
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// wildRarityTable is the fixed rarity roll for region-scoped "wild"
// draws (expedition/minigame card grants). Cumulative rarest-first.
var wildRarityTable = []engine.Entry[catalog.Rarity]{
	{Value: catalog.RarityLegendary, Weight: 0.2},
	{Value: catalog.RarityMythic, Weight: 0.5},
	{Value: catalog.RarityRare, Weight: 9.3},
	{Value: catalog.RarityUncommon, Weight: 20},
	{Value: catalog.RarityCommon, Weight: 70},
}

// Resolution records which path produced a card: the straight pool, or
// one of the named fallback policies. Invisible to the player, but
// surfaced so tests and diagnostics can assert on the path taken.
type Resolution struct {
	Rarity            catalog.Rarity `json:"rarity"`
	Region            string         `json:"region,omitempty"`
	CommonFallback    bool           `json:"commonFallback,omitempty"`
	RegionSubstituted bool           `json:"regionSubstituted,omitempty"`
	AnyRarityFallback bool           `json:"anyRarityFallback,omitempty"`
}

// resolveByRarity picks a card of the given rarity from unlocked
// regions. An empty pool falls back to unlocked commons; an empty
// fallback pool is a configuration error (valid catalogs always have
// commons in the starter region).
func (c *Core) resolveByRarity(rarity catalog.Rarity) (catalog.Card, Resolution, error) {
	res := Resolution{Rarity: rarity}
	unlocked := c.unlockedSet()

	candidates := c.catalog.CardsWhere(func(card catalog.Card) bool {
		return card.Rarity == rarity && unlocked[card.Region]
	})
	if len(candidates) == 0 {
		res.CommonFallback = true
		res.Rarity = catalog.RarityCommon
		c.log.Warn("no unlocked candidates for rarity, falling back to common",
			zap.String("rarity", string(rarity)))
		candidates = c.catalog.CardsWhere(func(card catalog.Card) bool {
			return card.Rarity == catalog.RarityCommon && unlocked[card.Region]
		})
	}
	if len(candidates) == 0 {
		return catalog.Card{}, res, ErrNoCandidates
	}

	card := candidates[engine.PickUniform(c.rng, len(candidates))]
	res.Region = card.Region
	return card, res, nil
}

// resolveWild picks a card from a target region with a wild-table
// rarity roll. A locked target substitutes the first unlocked region.
// A region with no cards at all yields ok=false: no reward.
func (c *Core) resolveWild(regionID string) (catalog.Card, Resolution, bool) {
	res := Resolution{Region: regionID}

	if !c.RegionUnlocked(regionID) {
		substitute := c.firstUnlockedRegion()
		c.log.Debug("wild draw region locked, substituting",
			zap.String("requested", regionID),
			zap.String("substitute", substitute))
		res.Region = substitute
		res.RegionSubstituted = true
		regionID = substitute
	}

	rarity, err := engine.Pick(c.rng, wildRarityTable)
	if err != nil {
		return catalog.Card{}, res, false
	}
	res.Rarity = rarity

	candidates := c.catalog.CardsWhere(func(card catalog.Card) bool {
		return card.Region == regionID && card.Rarity == rarity
	})
	if len(candidates) == 0 {
		res.AnyRarityFallback = true
		candidates = c.catalog.CardsWhere(func(card catalog.Card) bool {
			return card.Region == regionID
		})
	}
	if len(candidates) == 0 {
		c.log.Warn("wild draw found region with no cards", zap.String("region", regionID))
		return catalog.Card{}, res, false
	}

	card := candidates[engine.PickUniform(c.rng, len(candidates))]
	res.Rarity = card.Rarity
	return card, res, true
}
