package bindings

import (
	"encoding/json"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/game"
	"github.com/Mplus-me/rockcardcollector-v1/internal/store"
)

// CatalogView is the static content payload handed to the frontend
// once at startup.
type CatalogView struct {
	Cards   []catalog.Card          `json:"cards"`
	Packs   map[string]catalog.Pack `json:"packs"`
	Regions []catalog.Region        `json:"regions"`
}

// GetCatalog returns the full static catalog.
func (a *App) GetCatalog() CatalogView {
	return CatalogView{Cards: a.cat.Cards, Packs: a.cat.Packs, Regions: a.cat.Regions}
}

// GetState returns the full mutable state view.
func (a *App) GetState() game.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.Snapshot()
}

// GetUnlockedRegions returns the regions the player may currently draw
// from, in catalog order.
func (a *App) GetUnlockedRegions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.UnlockedRegions()
}

// GetUniqueCardCount returns how many distinct cards the player owns.
func (a *App) GetUniqueCardCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.UniqueCardCount()
}

// GetExpeditions returns the three expedition slots.
func (a *App) GetExpeditions() [game.ExpeditionSlotCount]game.ExpeditionSlot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.Expeditions()
}

// OpenPack opens one held pack and returns the three-card reveal. The
// reveal also lands in the openings history and is emitted as a
// pack:reveal event.
func (a *App) OpenPack(packID string) (*game.Reveal, error) {
	a.mu.Lock()
	reveal, err := a.core.OpenPack(packID)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}
	a.persist()
	a.mu.Unlock()

	a.recordOpening(reveal)
	runtime.EventsEmit(a.ctx, "pack:reveal", reveal)
	return reveal, nil
}

func (a *App) recordOpening(reveal *game.Reveal) {
	cards, err := json.Marshal(reveal.Cards)
	if err != nil {
		a.log.Warn("encoding opening history row", zap.Error(err))
		return
	}
	op := &store.Opening{ID: reveal.ID, Pack: reveal.Pack, Cards: string(cards)}
	if err := a.db.RecordOpening(op); err != nil {
		a.log.Warn("recording opening history row", zap.Error(err))
	}
}

// GetOpeningHistory returns past pack openings newest-first.
func (a *App) GetOpeningHistory(limit, offset int) ([]store.Opening, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return a.db.GetOpenings(limit, offset)
}

// StartExpedition sends an empty slot out.
func (a *App) StartExpedition(slot int) (game.ExpeditionSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.core.StartExpedition(slot, time.Now())
	if err != nil {
		return game.ExpeditionSlot{}, err
	}
	a.persist()
	return s, nil
}

// ClaimExpedition collects a finished slot's pack reward.
func (a *App) ClaimExpedition(slot int) (game.ExpeditionReward, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	reward, err := a.core.ClaimExpedition(slot)
	if err != nil {
		return game.ExpeditionReward{}, err
	}
	a.persist()
	return reward, nil
}

// CastLine starts a fishing attempt.
func (a *App) CastLine() game.FishingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.CastLine(time.Now())
}

// ReelIn attempts to land the current bite. The reward is nil on an
// early or late reel.
func (a *App) ReelIn() (*game.MinigameResult, game.FishingState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	result, state := a.core.ReelIn(time.Now())
	a.persist()
	return result, state
}

// GetFishingStatus returns the fishing machine state for polling
// between events.
func (a *App) GetFishingStatus() game.FishingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.FishingStatus()
}

// LeaveFishing abandons any in-flight attempt.
func (a *App) LeaveFishing() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.core.LeaveFishing()
}

// StartSifting begins a timed sifting round, superseding any round
// already running.
func (a *App) StartSifting() game.SiftingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.StartSifting(time.Now())
}

// GetSiftingStatus returns the sifting round state for polling.
func (a *App) GetSiftingStatus() game.SiftingState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.SiftingStatus()
}

// SiftAction resolves the player's pick for the live round. ok is
// false when no round is live.
func (a *App) SiftAction(rockIndex int) (*game.MinigameResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	result, ok := a.core.SiftAction(rockIndex, time.Now())
	a.persist()
	return result, ok
}

// LeaveSifting abandons the live round.
func (a *App) LeaveSifting() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.core.LeaveSifting()
}

// ToggleConversionSelection cycles the selected count of a duplicate
// stack and returns the new count.
func (a *App) ToggleConversionSelection(cardID string, art int, foil string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f := game.Foil(foil)
	if f != game.FoilShiny {
		f = game.FoilNormal
	}
	return a.core.ToggleConversionSelection(game.VariantKey{CardID: cardID, Art: art, Foil: f})
}

// ClearConversionSelection drops the current selection.
func (a *App) ClearConversionSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.core.ClearConversionSelection()
}

// GetConversionSelection lists the current selection.
func (a *App) GetConversionSelection() []game.SelectionEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.ConversionSelection()
}

// PreviewConversion quotes the selection without committing it.
func (a *App) PreviewConversion() game.ConversionPreview {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.core.PreviewConversion()
}

// ConfirmConversion spends the selected duplicates for the best
// qualifying pack and returns the granted pack id.
func (a *App) ConfirmConversion() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	pack, err := a.core.ConfirmConversion()
	if err != nil {
		return "", err
	}
	a.persist()
	return pack, nil
}

// SetMuseumSlot places an owned card on a museum display slot.
func (a *App) SetMuseumSlot(slot, cardID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.core.SetMuseumSlot(slot, cardID); err != nil {
		return err
	}
	a.persist()
	return nil
}

// ClearMuseumSlot empties a museum display slot.
func (a *App) ClearMuseumSlot(slot string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.core.ClearMuseumSlot(slot)
	a.persist()
}
