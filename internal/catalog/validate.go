package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the cross-references and probability invariants the
// resolvers rely on. It runs once at load; a failure aborts startup.
func (c *Catalog) Validate() error {
	var errs []string

	if len(c.Cards) == 0 {
		errs = append(errs, "cards catalog is empty")
	}
	if len(c.Packs) == 0 {
		errs = append(errs, "packs catalog is empty")
	}
	if len(c.Regions) == 0 {
		errs = append(errs, "regions catalog is empty")
	}

	seenCards := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		if card.ID == "" {
			errs = append(errs, "card with empty id")
			continue
		}
		if seenCards[card.ID] {
			errs = append(errs, fmt.Sprintf("duplicate card id %q", card.ID))
		}
		seenCards[card.ID] = true
		if !card.Rarity.Valid() {
			errs = append(errs, fmt.Sprintf("card %q: unknown rarity %q", card.ID, card.Rarity))
		}
		if _, ok := c.regionsByID[card.Region]; !ok {
			errs = append(errs, fmt.Sprintf("card %q: unknown region %q", card.ID, card.Region))
		}
	}

	for id, pack := range c.Packs {
		if len(pack.Rarities) == 0 {
			errs = append(errs, fmt.Sprintf("pack %q: empty rarity table", id))
		}
		total := 0.0
		for rarity, weight := range pack.Rarities {
			if !rarity.Valid() {
				errs = append(errs, fmt.Sprintf("pack %q: unknown rarity %q", id, rarity))
			}
			if weight < 0 {
				errs = append(errs, fmt.Sprintf("pack %q: negative weight for %q", id, rarity))
			}
			total += weight
		}
		// Under 100 is tolerated (the selector's catch-all absorbs the
		// shortfall); over 100 silently skews every tier and is a data bug.
		if total > 100.0001 {
			errs = append(errs, fmt.Sprintf("pack %q: rarity weights sum to %.2f (> 100)", id, total))
		}
	}

	seenRegions := make(map[string]bool, len(c.Regions))
	starter := ""
	for _, region := range c.Regions {
		if region.ID == "" {
			errs = append(errs, "region with empty id")
			continue
		}
		if seenRegions[region.ID] {
			errs = append(errs, fmt.Sprintf("duplicate region id %q", region.ID))
		}
		seenRegions[region.ID] = true
		switch region.Unlock.Type {
		case UnlockPacks, UnlockUnique:
		default:
			errs = append(errs, fmt.Sprintf("region %q: unknown unlock type %q", region.ID, region.Unlock.Type))
		}
		if region.Unlock.Value < 0 {
			errs = append(errs, fmt.Sprintf("region %q: negative unlock value", region.ID))
		}
		if starter == "" && region.Unlock.Type == UnlockPacks && region.Unlock.Value == 0 {
			starter = region.ID
		}
	}

	// The resolver's common-tier fallback assumes at least one region is
	// unlocked from the first pack, and that it contains common cards.
	if starter == "" {
		errs = append(errs, "no starter region (packs unlock with value 0)")
	} else {
		hasCommon := false
		for _, card := range c.Cards {
			if card.Region == starter && card.Rarity == RarityCommon {
				hasCommon = true
				break
			}
		}
		if !hasCommon {
			errs = append(errs, fmt.Sprintf("starter region %q has no common cards", starter))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
