package game

import (
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// MinigameOutcome is the branch a minigame roll landed on.
type MinigameOutcome string

const (
	OutcomePack    MinigameOutcome = "pack"
	OutcomeCard    MinigameOutcome = "card"
	OutcomeNothing MinigameOutcome = "nothing"
)

// minigameEntry is one row of a minigame outcome table. Card rows use
// the minigame's fixed target region at roll time.
type minigameEntry struct {
	Outcome MinigameOutcome
	Pack    string
	Flavor  string
}

// MinigameResult is the plain-data outcome of one minigame success.
type MinigameResult struct {
	Outcome MinigameOutcome `json:"outcome"`
	Pack    string          `json:"pack,omitempty"`
	Card    *RevealCard     `json:"card,omitempty"`
	Flavor  string          `json:"flavor,omitempty"`
}

// Both minigames share one table shape: three pack tiers, one
// region-scoped card grant, one empty-handed ending with flavor text.
var fishingTable = []engine.Entry[minigameEntry]{
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "advanced"}, Weight: 3},
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "explorer"}, Weight: 12},
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "basic"}, Weight: 30},
	{Value: minigameEntry{Outcome: OutcomeCard}, Weight: 25},
	{Value: minigameEntry{Outcome: OutcomeNothing, Flavor: "An old boot. The river keeps its secrets."}, Weight: 30},
}

var siftingTable = []engine.Entry[minigameEntry]{
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "advanced"}, Weight: 2},
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "explorer"}, Weight: 10},
	{Value: minigameEntry{Outcome: OutcomePack, Pack: "basic"}, Weight: 28},
	{Value: minigameEntry{Outcome: OutcomeCard}, Weight: 30},
	{Value: minigameEntry{Outcome: OutcomeNothing, Flavor: "Just gravel. Satisfying gravel, though."}, Weight: 30},
}

// Fixed target regions for the card-grant branch.
const (
	fishingRegion = "riverbed"
	siftingRegion = "cavern"
)

// rollMinigame resolves one outcome table and applies the grant. Card
// grants go through the wild resolver against the target region and
// enter the collection as base-art, non-foil copies.
func (c *Core) rollMinigame(table []engine.Entry[minigameEntry], targetRegion string) *MinigameResult {
	entry, err := engine.Pick(c.rng, table)
	if err != nil {
		// Tables are package constants; an empty one is unreachable.
		return &MinigameResult{Outcome: OutcomeNothing}
	}

	switch entry.Outcome {
	case OutcomePack:
		c.grantPack(entry.Pack, 1)
		c.markDirty()
		return &MinigameResult{Outcome: OutcomePack, Pack: entry.Pack}

	case OutcomeCard:
		card, res, ok := c.resolveWild(targetRegion)
		if !ok {
			// Region with zero catalog entries: no reward.
			return &MinigameResult{Outcome: OutcomeNothing, Flavor: "Nothing this time."}
		}
		isNew := !c.inventory.OwnsCard(card.ID)
		key := VariantKey{CardID: card.ID, Art: 0, Foil: FoilNormal}
		c.inventory.Add(key, 1)
		c.refreshUniqueCount()
		c.markDirty()
		c.log.Debug("minigame card grant",
			zap.String("card", card.ID),
			zap.Bool("regionSubstituted", res.RegionSubstituted))
		return &MinigameResult{
			Outcome: OutcomeCard,
			Card: &RevealCard{
				CardID:     card.ID,
				Name:       card.Name,
				Rarity:     card.Rarity,
				Region:     card.Region,
				Foil:       FoilNormal,
				New:        isNew,
				Resolution: res,
			},
		}

	default:
		return &MinigameResult{Outcome: OutcomeNothing, Flavor: entry.Flavor}
	}
}
