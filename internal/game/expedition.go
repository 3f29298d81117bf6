package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

// ExpeditionSlotCount is the fixed number of expedition slots.
const ExpeditionSlotCount = 3

// ExpeditionState is a slot's lifecycle phase.
type ExpeditionState string

const (
	ExpeditionEmpty    ExpeditionState = "empty"
	ExpeditionOut      ExpeditionState = "out"
	ExpeditionComplete ExpeditionState = "complete"
)

// ExpeditionReward is the pack granted when a finished slot is claimed.
type ExpeditionReward struct {
	Pack  string `json:"pack"`
	Bonus bool   `json:"bonus"`
}

// ExpeditionSlot tracks one slot. EndsAt is meaningful only while out;
// Reward only while complete.
type ExpeditionSlot struct {
	State  ExpeditionState   `json:"state"`
	EndsAt time.Time         `json:"endsAt,omitzero"`
	Reward *ExpeditionReward `json:"reward,omitempty"`
}

// expeditionConfig is the static per-slot configuration: duration and
// the base/bonus pack pair with the bonus chance in percent.
type expeditionConfig struct {
	Duration    time.Duration
	BasePack    string
	BonusPack   string
	BonusChance float64
}

var expeditionConfigs = [ExpeditionSlotCount]expeditionConfig{
	{Duration: 5 * time.Minute, BasePack: "basic", BonusPack: "explorer", BonusChance: 25},
	{Duration: 30 * time.Minute, BasePack: "explorer", BonusPack: "advanced", BonusChance: 20},
	{Duration: 2 * time.Hour, BasePack: "advanced", BonusPack: "deluxe", BonusChance: 15},
}

// ExpeditionDuration exposes a slot's configured duration.
func ExpeditionDuration(slot int) time.Duration {
	if slot < 0 || slot >= ExpeditionSlotCount {
		return 0
	}
	return expeditionConfigs[slot].Duration
}

// Expeditions returns the current slot states.
func (c *Core) Expeditions() [ExpeditionSlotCount]ExpeditionSlot {
	return c.expeditions
}

// StartExpedition sends an empty slot out until now + its configured
// duration. Starting a non-empty slot is rejected without mutation;
// expeditions cannot be recalled once started.
func (c *Core) StartExpedition(slot int, now time.Time) (ExpeditionSlot, error) {
	if slot < 0 || slot >= ExpeditionSlotCount {
		return ExpeditionSlot{}, fmt.Errorf("start expedition %d: %w", slot, ErrBadSlot)
	}
	if c.expeditions[slot].State != ExpeditionEmpty {
		return ExpeditionSlot{}, fmt.Errorf("start expedition %d: %w", slot, ErrSlotNotEmpty)
	}

	c.expeditions[slot] = ExpeditionSlot{
		State:  ExpeditionOut,
		EndsAt: now.Add(expeditionConfigs[slot].Duration),
	}
	c.markDirty()
	c.log.Debug("expedition started",
		zap.Int("slot", slot),
		zap.Time("endsAt", c.expeditions[slot].EndsAt))
	return c.expeditions[slot], nil
}

// advanceExpeditions applies the shared past-due rule: any slot out
// past its end time completes and has its reward rolled, exactly once,
// no matter how late the check runs. Both the per-second tick and the
// load-time catch-up use this. Returns the slots completed this call.
func (c *Core) advanceExpeditions(now time.Time) []int {
	var completed []int
	for i := range c.expeditions {
		slot := &c.expeditions[i]
		if slot.State != ExpeditionOut || now.Before(slot.EndsAt) {
			continue
		}
		slot.State = ExpeditionComplete
		slot.Reward = c.rollExpeditionReward(i)
		c.markDirty()
		completed = append(completed, i)
		c.log.Debug("expedition complete",
			zap.Int("slot", i),
			zap.String("pack", slot.Reward.Pack),
			zap.Bool("bonus", slot.Reward.Bonus))
	}
	return completed
}

// rollExpeditionReward decides base vs bonus pack with a single roll.
func (c *Core) rollExpeditionReward(slot int) *ExpeditionReward {
	cfg := expeditionConfigs[slot]
	if engine.Percent(c.rng) < cfg.BonusChance {
		return &ExpeditionReward{Pack: cfg.BonusPack, Bonus: true}
	}
	return &ExpeditionReward{Pack: cfg.BasePack}
}

// ClaimExpedition grants a complete slot's reward and empties it.
// Claiming an empty or still-out slot is rejected without mutation.
func (c *Core) ClaimExpedition(slot int) (ExpeditionReward, error) {
	if slot < 0 || slot >= ExpeditionSlotCount {
		return ExpeditionReward{}, fmt.Errorf("claim expedition %d: %w", slot, ErrBadSlot)
	}
	s := c.expeditions[slot]
	if s.State != ExpeditionComplete || s.Reward == nil {
		return ExpeditionReward{}, fmt.Errorf("claim expedition %d: %w", slot, ErrSlotNotComplete)
	}

	reward := *s.Reward
	c.grantPack(reward.Pack, 1)
	c.expeditions[slot] = ExpeditionSlot{State: ExpeditionEmpty}
	c.markDirty()
	return reward, nil
}

// CheckOnLoad runs the offline catch-up pass. It must complete before
// the first tick so no slot is ever observable out past its end time
// once the game is interactive.
func (c *Core) CheckOnLoad(now time.Time) []Event {
	var events []Event
	for _, slot := range c.advanceExpeditions(now) {
		events = append(events, Event{Type: EventExpeditionComplete, Slot: slot})
	}
	return events
}
