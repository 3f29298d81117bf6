package game

import "github.com/Mplus-me/rockcardcollector-v1/internal/catalog"

// UniqueCardCount returns the live distinct-card count. Recomputed on
// every call so region gating always reflects the latest inventory.
func (c *Core) UniqueCardCount() int {
	return c.inventory.UniqueCardCount()
}

// UnlockedRegions returns the unlocked region ids in catalog order.
func (c *Core) UnlockedRegions() []string {
	var out []string
	for _, region := range c.catalog.Regions {
		if c.regionUnlocked(region) {
			out = append(out, region.ID)
		}
	}
	return out
}

// RegionUnlocked reports whether the given region id is unlocked.
func (c *Core) RegionUnlocked(regionID string) bool {
	region, ok := c.catalog.Region(regionID)
	if !ok {
		return false
	}
	return c.regionUnlocked(region)
}

func (c *Core) regionUnlocked(region catalog.Region) bool {
	switch region.Unlock.Type {
	case catalog.UnlockPacks:
		return c.progress.PacksOpened >= region.Unlock.Value
	case catalog.UnlockUnique:
		return c.inventory.UniqueCardCount() >= region.Unlock.Value
	default:
		return false
	}
}

func (c *Core) unlockedSet() map[string]bool {
	set := make(map[string]bool)
	for _, region := range c.catalog.Regions {
		if c.regionUnlocked(region) {
			set[region.ID] = true
		}
	}
	return set
}

// firstUnlockedRegion returns the earliest unlocked region in catalog
// order. The starter region's zero-threshold rule guarantees one
// exists for valid catalog data.
func (c *Core) firstUnlockedRegion() string {
	for _, region := range c.catalog.Regions {
		if c.regionUnlocked(region) {
			return region.ID
		}
	}
	// Invariant violation: validation requires an always-unlocked
	// starter region. Fall back to catalog order anyway.
	c.log.Warn("no unlocked region; catalog starter invariant violated")
	if len(c.catalog.Regions) > 0 {
		return c.catalog.Regions[0].ID
	}
	return ""
}
