package game

import "fmt"

// The museum is a display shelf: slot id to card id. It shares the
// save blob but carries no game rules.

// Museum returns the current display assignments.
func (c *Core) Museum() map[string]string {
	out := make(map[string]string, len(c.museum))
	for k, v := range c.museum {
		out[k] = v
	}
	return out
}

// SetMuseumSlot places an owned card on a display slot.
func (c *Core) SetMuseumSlot(slot, cardID string) error {
	if !c.inventory.OwnsCard(cardID) {
		return fmt.Errorf("museum slot %s: %w", slot, ErrCardNotOwned)
	}
	c.museum[slot] = cardID
	c.markDirty()
	return nil
}

// ClearMuseumSlot empties a display slot.
func (c *Core) ClearMuseumSlot(slot string) {
	if _, ok := c.museum[slot]; !ok {
		return
	}
	delete(c.museum, slot)
	c.markDirty()
}
