package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// Save blob schema. Migration is by field presence, not by version
// number: any missing top-level section is backfilled with its default
// on load, and the caller re-saves immediately.

type savePlayer struct {
	PacksOpened      int            `json:"packsOpened"`
	UniqueCardsOwned int            `json:"uniqueCardsOwned"`
	PackInventory    map[string]int `json:"packInventory"`
}

type saveCardEntry struct {
	Card  string `json:"card"`
	Art   int    `json:"art"`
	Foil  Foil   `json:"foil"`
	Count int    `json:"count"`
}

type saveInventory struct {
	Cards []saveCardEntry `json:"cards"`
}

type saveExpedition struct {
	State  ExpeditionState   `json:"state"`
	EndsAt int64             `json:"endsAt,omitempty"` // unix millis while out
	Reward *ExpeditionReward `json:"reward,omitempty"`
}

type saveBlob struct {
	Player      *savePlayer       `json:"player,omitempty"`
	Inventory   *saveInventory    `json:"inventory,omitempty"`
	Expeditions []saveExpedition  `json:"expeditions,omitempty"`
	Museum      map[string]string `json:"museum,omitempty"`
}

// MarshalSave serializes the persisted state as one JSON blob.
// Minigame machines and the conversion selection are ephemeral and
// deliberately absent.
func (c *Core) MarshalSave() ([]byte, error) {
	blob := saveBlob{
		Player: &savePlayer{
			PacksOpened:      c.progress.PacksOpened,
			UniqueCardsOwned: c.progress.UniqueCardsOwned,
			PackInventory:    copyPackCounts(c.progress.PackInventory),
		},
		Inventory:   &saveInventory{Cards: []saveCardEntry{}},
		Expeditions: make([]saveExpedition, ExpeditionSlotCount),
		Museum:      c.museum,
	}
	if blob.Museum == nil {
		blob.Museum = map[string]string{}
	}

	for _, e := range c.inventory.Entries() {
		blob.Inventory.Cards = append(blob.Inventory.Cards, saveCardEntry{
			Card:  e.CardID,
			Art:   e.Art,
			Foil:  e.Foil,
			Count: e.Count,
		})
	}

	for i, slot := range c.expeditions {
		se := saveExpedition{State: slot.State, Reward: slot.Reward}
		if slot.State == ExpeditionOut {
			se.EndsAt = slot.EndsAt.UnixMilli()
		}
		blob.Expeditions[i] = se
	}

	return json.Marshal(blob)
}

// RestoreSave replaces the persisted state from a blob. It reports
// whether any missing section was backfilled with defaults, in which
// case the caller must re-save at once (forward-compatible schema
// migration by presence check).
func (c *Core) RestoreSave(data []byte) (backfilled bool, err error) {
	var blob saveBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return false, fmt.Errorf("restore save: %w", err)
	}

	if blob.Player == nil {
		blob.Player = &savePlayer{PackInventory: map[string]int{"basic": 3}}
		backfilled = true
	}
	if blob.Inventory == nil {
		blob.Inventory = &saveInventory{}
		backfilled = true
	}
	if blob.Expeditions == nil {
		blob.Expeditions = make([]saveExpedition, ExpeditionSlotCount)
		for i := range blob.Expeditions {
			blob.Expeditions[i] = saveExpedition{State: ExpeditionEmpty}
		}
		backfilled = true
	}
	if blob.Museum == nil {
		blob.Museum = map[string]string{}
		backfilled = true
	}

	c.progress = Progress{
		PacksOpened:   blob.Player.PacksOpened,
		PackInventory: blob.Player.PackInventory,
	}
	if c.progress.PackInventory == nil {
		c.progress.PackInventory = make(map[string]int)
	}

	c.inventory = NewInventory()
	for _, entry := range blob.Inventory.Cards {
		if entry.Count <= 0 {
			continue
		}
		foil := entry.Foil
		if foil != FoilShiny {
			foil = FoilNormal
		}
		c.inventory.Add(VariantKey{CardID: entry.Card, Art: entry.Art, Foil: foil}, entry.Count)
	}
	// uniqueCardsOwned is derived; never trust the stored cache.
	c.refreshUniqueCount()

	for i := range c.expeditions {
		c.expeditions[i] = ExpeditionSlot{State: ExpeditionEmpty}
		if i >= len(blob.Expeditions) {
			continue
		}
		se := blob.Expeditions[i]
		switch se.State {
		case ExpeditionOut:
			c.expeditions[i] = ExpeditionSlot{
				State:  ExpeditionOut,
				EndsAt: time.UnixMilli(se.EndsAt),
			}
		case ExpeditionComplete:
			if se.Reward != nil {
				c.expeditions[i] = ExpeditionSlot{State: ExpeditionComplete, Reward: se.Reward}
			}
		}
	}

	c.museum = blob.Museum
	c.fishing = FishingState{Phase: FishingIdle}
	c.sifting = SiftingState{}
	c.selection = make(map[VariantKey]int)

	if backfilled {
		c.markDirty()
	} else {
		c.dirty = false
	}
	return backfilled, nil
}
