package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

func TestSaveRoundTrip(t *testing.T) {
	src := newTestCore(t, engine.NewPercentSequence(50))
	give(src, "pebble", 0, FoilNormal, 7)
	give(src, "quartz", 1, FoilShiny, 2)
	src.progress.PacksOpened = 12
	src.progress.PackInventory = map[string]int{"basic": 2, "explorer": 1}
	src.refreshUniqueCount()

	endsAt := time.UnixMilli(5_000_000)
	if _, err := src.StartExpedition(0, endsAt.Add(-ExpeditionDuration(0))); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	src.expeditions[2] = ExpeditionSlot{
		State:  ExpeditionComplete,
		Reward: &ExpeditionReward{Pack: "deluxe", Bonus: true},
	}
	if err := src.SetMuseumSlot("shelf-1", "quartz"); err != nil {
		t.Fatalf("museum set failed: %v", err)
	}

	blob, err := src.MarshalSave()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	dst := newTestCore(t, engine.NewPercentSequence(50))
	backfilled, err := dst.RestoreSave(blob)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if backfilled {
		t.Error("a complete blob must not report backfill")
	}
	if dst.Dirty() {
		t.Error("restoring a complete blob must leave the core clean")
	}

	if got := dst.inventory.Count(VariantKey{CardID: "pebble", Foil: FoilNormal}); got != 7 {
		t.Errorf("pebble count: expected 7, got %d", got)
	}
	if got := dst.inventory.Count(VariantKey{CardID: "quartz", Art: 1, Foil: FoilShiny}); got != 2 {
		t.Errorf("foil quartz count: expected 2, got %d", got)
	}
	if dst.progress.PacksOpened != 12 || dst.PackCount("basic") != 2 || dst.PackCount("explorer") != 1 {
		t.Errorf("progress mismatch: %+v", dst.progress)
	}

	slots := dst.Expeditions()
	if slots[0].State != ExpeditionOut || !slots[0].EndsAt.Equal(endsAt) {
		t.Errorf("slot 0 mismatch: %+v", slots[0])
	}
	if slots[1].State != ExpeditionEmpty {
		t.Errorf("slot 1 mismatch: %+v", slots[1])
	}
	if slots[2].State != ExpeditionComplete || slots[2].Reward == nil ||
		slots[2].Reward.Pack != "deluxe" || !slots[2].Reward.Bonus {
		t.Errorf("slot 2 mismatch: %+v", slots[2])
	}
	if dst.Museum()["shelf-1"] != "quartz" {
		t.Errorf("museum mismatch: %v", dst.Museum())
	}
}

func TestRestoreEmptyBlobBackfillsDefaults(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	give(c, "pebble", 0, FoilNormal, 5)

	backfilled, err := c.RestoreSave([]byte("{}"))
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !backfilled {
		t.Fatal("an empty blob must report backfill so the caller re-saves")
	}
	if !c.Dirty() {
		t.Error("backfill must mark the core dirty")
	}
	if got := c.PackCount("basic"); got != 3 {
		t.Errorf("expected 3 starter basic packs, got %d", got)
	}
	if got := c.UniqueCardCount(); got != 0 {
		t.Errorf("expected empty inventory, got %d unique cards", got)
	}
	for i, slot := range c.Expeditions() {
		if slot.State != ExpeditionEmpty {
			t.Errorf("slot %d: expected empty, got %s", i, slot.State)
		}
	}
	if c.Museum() == nil || len(c.Museum()) != 0 {
		t.Errorf("expected empty museum, got %v", c.Museum())
	}
}

func TestRestorePartialBlobBackfillsMissingSections(t *testing.T) {
	blob := []byte(`{
		"player": {"packsOpened": 4, "packInventory": {"explorer": 2}},
		"inventory": {"cards": [{"card": "slate", "art": 0, "foil": "normal", "count": 3}]}
	}`)

	c := newTestCore(t, engine.NewSequence(0))
	backfilled, err := c.RestoreSave(blob)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !backfilled {
		t.Fatal("missing expeditions and museum must report backfill")
	}
	// Present sections survive untouched.
	if c.progress.PacksOpened != 4 || c.PackCount("explorer") != 2 {
		t.Errorf("player section mangled: %+v", c.progress)
	}
	if got := c.inventory.Count(VariantKey{CardID: "slate", Foil: FoilNormal}); got != 3 {
		t.Errorf("slate count: expected 3, got %d", got)
	}
	// Missing sections arrive as defaults, not starter grants.
	if got := c.PackCount("basic"); got != 0 {
		t.Errorf("present player section must not gain starter packs, got %d", got)
	}
	for i, slot := range c.Expeditions() {
		if slot.State != ExpeditionEmpty {
			t.Errorf("slot %d: expected empty, got %s", i, slot.State)
		}
	}
}

func TestRestoreRecomputesUniqueCount(t *testing.T) {
	blob := []byte(`{
		"player": {"packsOpened": 1, "uniqueCardsOwned": 999, "packInventory": {}},
		"inventory": {"cards": [
			{"card": "pebble", "art": 0, "foil": "normal", "count": 2},
			{"card": "pebble", "art": 1, "foil": "foil", "count": 1},
			{"card": "quartz", "art": 0, "foil": "normal", "count": 1}
		]},
		"expeditions": [{"state":"empty"},{"state":"empty"},{"state":"empty"}],
		"museum": {}
	}`)

	c := newTestCore(t, engine.NewSequence(0))
	if _, err := c.RestoreSave(blob); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	// Two distinct cards regardless of variants or the stored cache.
	if got := c.UniqueCardCount(); got != 2 {
		t.Errorf("expected 2 unique cards, got %d", got)
	}
	if c.progress.UniqueCardsOwned != 2 {
		t.Errorf("cached count must be recomputed, got %d", c.progress.UniqueCardsOwned)
	}
}

func TestRestoreSanitizesVariantsAndDropsEmptyStacks(t *testing.T) {
	blob := []byte(`{
		"player": {"packInventory": {}},
		"inventory": {"cards": [
			{"card": "pebble", "art": 0, "foil": "sparkly", "count": 2},
			{"card": "quartz", "art": 0, "foil": "normal", "count": 0},
			{"card": "slate", "art": 0, "foil": "normal", "count": -4}
		]},
		"expeditions": [],
		"museum": {}
	}`)

	c := newTestCore(t, engine.NewSequence(0))
	if _, err := c.RestoreSave(blob); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := c.inventory.Count(VariantKey{CardID: "pebble", Foil: FoilNormal}); got != 2 {
		t.Errorf("unknown foil must collapse to normal, got %d", got)
	}
	if c.inventory.OwnsCard("quartz") || c.inventory.OwnsCard("slate") {
		t.Error("zero and negative stacks must be dropped")
	}
}

func TestRestoreResetsEphemeralState(t *testing.T) {
	c := newTestCore(t, engine.NewPercentSequence(50))
	give(c, "pebble", 0, FoilNormal, 5)
	c.selection[VariantKey{CardID: "pebble", Foil: FoilNormal}] = 2
	c.CastLine(time.UnixMilli(0))
	c.StartSifting(time.UnixMilli(0))

	blob, err := c.MarshalSave()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := c.RestoreSave(blob); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := c.FishingStatus().Phase; got != FishingIdle {
		t.Errorf("fishing must reset to idle, got %s", got)
	}
	if c.SiftingStatus().Active {
		t.Error("sifting round must not survive a restore")
	}
	if len(c.selection) != 0 {
		t.Error("conversion selection must not survive a restore")
	}
}

func TestRestoreRejectsMalformedBlob(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	give(c, "pebble", 0, FoilNormal, 5)
	before := c.inventory.Count(VariantKey{CardID: "pebble", Foil: FoilNormal})

	if _, err := c.RestoreSave([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if got := c.inventory.Count(VariantKey{CardID: "pebble", Foil: FoilNormal}); got != before {
		t.Error("a failed restore must not touch live state")
	}
}

func TestMarshalOmitsEndsAtUnlessOut(t *testing.T) {
	c := newTestCore(t, engine.NewPercentSequence(99))
	now := time.UnixMilli(100_000)
	if _, err := c.StartExpedition(1, now); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Advance(now.Add(ExpeditionDuration(1) + time.Millisecond))

	blob, err := c.MarshalSave()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded struct {
		Expeditions []struct {
			State  string `json:"state"`
			EndsAt int64  `json:"endsAt"`
		} `json:"expeditions"`
	}
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.Expeditions) != ExpeditionSlotCount {
		t.Fatalf("expected %d slots, got %d", ExpeditionSlotCount, len(decoded.Expeditions))
	}
	if decoded.Expeditions[1].State != string(ExpeditionComplete) {
		t.Errorf("slot 1: expected complete, got %s", decoded.Expeditions[1].State)
	}
	if decoded.Expeditions[1].EndsAt != 0 {
		t.Error("completed slots must not persist an end time")
	}
	if decoded.Expeditions[0].State != string(ExpeditionEmpty) {
		t.Errorf("slot 0: expected empty, got %s", decoded.Expeditions[0].State)
	}
}

func TestMuseumSlotLifecycle(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	give(c, "sun-opal", 0, FoilNormal, 1)

	if err := c.SetMuseumSlot("pedestal", "sun-opal"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if c.Museum()["pedestal"] != "sun-opal" {
		t.Errorf("unexpected museum: %v", c.Museum())
	}
	if err := c.SetMuseumSlot("pedestal", "deep-diamond"); !errors.Is(err, ErrCardNotOwned) {
		t.Errorf("expected ErrCardNotOwned for an unowned card, got %v", err)
	}
	c.ClearMuseumSlot("pedestal")
	if _, ok := c.Museum()["pedestal"]; ok {
		t.Error("cleared slot must be gone")
	}
}
