package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// CardsPerPack is the fixed batch size of every pack opening.
const CardsPerPack = 3

// Variant unlock thresholds.
const (
	foilUnlockPacks   = 50  // packsOpened needed before foils can drop
	artTier1Unlocked  = 100 // uniqueCardsOwned for alt-art tier 1
	artTier2Unlocked  = 200 // uniqueCardsOwned for alt-art tier 2
	foilChancePercent = 1.0
)

// RevealCard is one drawn card with its presentation flags.
type RevealCard struct {
	CardID     string         `json:"card"`
	Name       string         `json:"name"`
	Rarity     catalog.Rarity `json:"rarity"`
	Region     string         `json:"region"`
	Art        int            `json:"art"`
	Foil       Foil           `json:"foil"`
	New        bool           `json:"new"`
	Resolution Resolution     `json:"resolution"`
}

// Reveal is the payload handed to the presentation layer after an
// opening. Constructing it is in scope; rendering it is not.
type Reveal struct {
	ID       string       `json:"id"`
	Pack     string       `json:"pack"`
	PackName string       `json:"packName"`
	Cards    []RevealCard `json:"cards"`
}

// artWeights returns the [base, alt1, alt2] percent table active for
// the current progression.
func (c *Core) artWeights() [3]float64 {
	switch {
	case c.progress.UniqueCardsOwned >= artTier2Unlocked:
		return [3]float64{98, 1, 1}
	case c.progress.UniqueCardsOwned >= artTier1Unlocked:
		return [3]float64{99, 1, 0}
	default:
		return [3]float64{100, 0, 0}
	}
}

// rollArt draws an art variant from the active table, checking alt2
// first, then alt1, else base. No draw is consumed while alternates
// are still locked.
func (c *Core) rollArt(weights [3]float64) int {
	if weights[1] == 0 && weights[2] == 0 {
		return 0
	}
	r := engine.Percent(c.rng)
	if r < weights[2] {
		return 2
	}
	if r < weights[2]+weights[1] {
		return 1
	}
	return 0
}

// rollFoil draws the flat foil chance. No draw while foils are locked.
func (c *Core) rollFoil(unlocked bool) Foil {
	if !unlocked {
		return FoilNormal
	}
	if engine.Percent(c.rng) < foilChancePercent {
		return FoilShiny
	}
	return FoilNormal
}

// OpenPack consumes one pack of the given type and produces its batch
// of three cards. Configuration errors (unknown pack, empty rarity
// table, no resolvable candidates) abort with no state mutation;
// opening with a zero count is a rejected precondition.
func (c *Core) OpenPack(packID string) (*Reveal, error) {
	pack, ok := c.catalog.Pack(packID)
	if !ok {
		return nil, fmt.Errorf("open pack %q: %w", packID, ErrUnknownPack)
	}
	if len(pack.Rarities) == 0 {
		return nil, fmt.Errorf("open pack %q: %w", packID, ErrNoRarityTable)
	}
	if c.progress.PackInventory[packID] <= 0 {
		return nil, fmt.Errorf("open pack %q: %w", packID, ErrNoPacks)
	}

	rarityTable := catalog.RarityEntries(pack.Rarities)
	foilUnlocked := c.progress.PacksOpened >= foilUnlockPacks
	weights := c.artWeights()

	// The is-new check runs against the collection as it stood before
	// this batch: two copies of a never-owned card in one pack both
	// count as new.
	ownedBefore := c.inventory.OwnedCardSet()

	// Resolve the whole batch before mutating anything, so a resolver
	// configuration error leaves the pack unconsumed.
	cards := make([]RevealCard, 0, CardsPerPack)
	for i := 0; i < CardsPerPack; i++ {
		rarity, err := engine.Pick(c.rng, rarityTable)
		if err != nil {
			return nil, fmt.Errorf("open pack %q: %w", packID, err)
		}
		card, res, err := c.resolveByRarity(rarity)
		if err != nil {
			return nil, fmt.Errorf("open pack %q: %w", packID, err)
		}
		cards = append(cards, RevealCard{
			CardID:     card.ID,
			Name:       card.Name,
			Rarity:     card.Rarity,
			Region:     card.Region,
			Art:        c.rollArt(weights),
			Foil:       c.rollFoil(foilUnlocked),
			New:        !ownedBefore[card.ID],
			Resolution: res,
		})
	}

	c.progress.PackInventory[packID]--
	for _, drawn := range cards {
		c.inventory.Add(VariantKey{CardID: drawn.CardID, Art: drawn.Art, Foil: drawn.Foil}, 1)
	}
	c.progress.PacksOpened++
	c.refreshUniqueCount()
	c.markDirty()

	reveal := &Reveal{
		ID:       uuid.NewString(),
		Pack:     packID,
		PackName: pack.Name,
		Cards:    cards,
	}
	c.log.Debug("pack opened",
		zap.String("pack", packID),
		zap.String("reveal", reveal.ID),
		zap.Int("packsOpened", c.progress.PacksOpened))
	return reveal, nil
}
