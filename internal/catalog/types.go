package catalog

import (
	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// Rarity is a card's drop tier.
type Rarity string

const (
	RaritySpecial   Rarity = "special"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
	RarityRare      Rarity = "rare"
	RarityUncommon  Rarity = "uncommon"
	RarityCommon    Rarity = "common"
)

// RarityOrder is the canonical rarest-to-commonest ordering. Every
// cumulative-probability roll over a sparse rarity table iterates in
// this order, and it is the tie-break order everywhere else.
var RarityOrder = []Rarity{
	RaritySpecial,
	RarityLegendary,
	RarityMythic,
	RarityRare,
	RarityUncommon,
	RarityCommon,
}

// Valid reports whether r names a known tier.
func (r Rarity) Valid() bool {
	for _, known := range RarityOrder {
		if r == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RaritySpecial:
		return "Special"
	case RarityLegendary:
		return "Legendary"
	case RarityMythic:
		return "Mythic"
	case RarityRare:
		return "Rare"
	case RarityUncommon:
		return "Uncommon"
	case RarityCommon:
		return "Common"
	default:
		return string(r)
	}
}

// RarityEntries expands a sparse rarity->percent table into an ordered
// weighted table, iterating RarityOrder so map iteration order can
// never reorder the cumulative walk. Absent tiers contribute no row.
func RarityEntries(table map[Rarity]float64) []engine.Entry[Rarity] {
	entries := make([]engine.Entry[Rarity], 0, len(table))
	for _, r := range RarityOrder {
		w, ok := table[r]
		if !ok {
			continue
		}
		entries = append(entries, engine.Entry[Rarity]{Value: r, Weight: w})
	}
	return entries
}

// Card is one collectible rock definition. Immutable after load.
type Card struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Rarity      Rarity `yaml:"rarity"`
	Region      string `yaml:"region"`
	Description string `yaml:"description,omitempty"`
}

// Pack maps a subset of rarities to percent chances. Tiers absent from
// the table have zero chance. The chances should sum to 100, but the
// selector does not assume it.
type Pack struct {
	ID       string             `yaml:"id"`
	Name     string             `yaml:"name"`
	Rarities map[Rarity]float64 `yaml:"rarities"`
}

// Unlock rule types.
const (
	UnlockPacks  = "packs"  // packsOpened >= Value
	UnlockUnique = "unique" // distinct cards owned >= Value
)

// UnlockRule gates a region behind a progression counter.
type UnlockRule struct {
	Type  string `yaml:"type"`
	Value int    `yaml:"value"`
}

// Region is a content partition. Declaration order in regions.yaml is
// meaningful: the first region is the starter and "first unlocked"
// substitutions follow this order.
type Region struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Unlock UnlockRule `yaml:"unlock"`
}

// Catalog holds the three static catalogs, loaded once at startup and
// read-only thereafter.
type Catalog struct {
	Cards   []Card
	Packs   map[string]Pack
	Regions []Region

	cardsByID   map[string]Card
	regionsByID map[string]Region
}

// Card looks up a card definition by id.
func (c *Catalog) Card(id string) (Card, bool) {
	card, ok := c.cardsByID[id]
	return card, ok
}

// Pack looks up a pack definition by id.
func (c *Catalog) Pack(id string) (Pack, bool) {
	p, ok := c.Packs[id]
	return p, ok
}

// Region looks up a region definition by id.
func (c *Catalog) Region(id string) (Region, bool) {
	r, ok := c.regionsByID[id]
	return r, ok
}

// CardsWhere returns cards passing the filter, in catalog order.
func (c *Catalog) CardsWhere(keep func(Card) bool) []Card {
	var out []Card
	for _, card := range c.Cards {
		if keep(card) {
			out = append(out, card)
		}
	}
	return out
}

func (c *Catalog) index() {
	c.cardsByID = make(map[string]Card, len(c.Cards))
	for _, card := range c.Cards {
		c.cardsByID[card.ID] = card
	}
	c.regionsByID = make(map[string]Region, len(c.Regions))
	for _, r := range c.Regions {
		c.regionsByID[r.ID] = r
	}
}
