package game

import "time"

// FishingPhase is the fishing micro-state-machine's phase. The machine
// gates when the reward roll happens, never what it returns.
type FishingPhase string

const (
	FishingIdle     FishingPhase = "idle"
	FishingWaiting  FishingPhase = "waiting"
	FishingBite     FishingPhase = "bite"
	FishingCooldown FishingPhase = "cooldown"
)

// FishingState is the phase plus the single deadline driving it. One
// deadline field instead of timer handles: superseded rounds simply
// overwrite it, so a stale callback can never fire.
type FishingState struct {
	Phase    FishingPhase `json:"phase"`
	Deadline time.Time    `json:"deadline,omitzero"`
}

const (
	fishingWaitMin    = 3 * time.Second
	fishingWaitMax    = 8 * time.Second
	fishingBiteWindow = 2500 * time.Millisecond
	fishingCooldown   = 3 * time.Second
)

// FishingStatus returns the current machine state.
func (c *Core) FishingStatus() FishingState {
	return c.fishing
}

// CastLine starts a round from idle: a randomized 3-8s wait before the
// bite. Casting in any other phase is a no-op returning the current
// state (mistimed clicks are normal play, not errors).
func (c *Core) CastLine(now time.Time) FishingState {
	if c.fishing.Phase != FishingIdle {
		return c.fishing
	}
	wait := fishingWaitMin + time.Duration(c.rng.Float64()*float64(fishingWaitMax-fishingWaitMin))
	c.fishing = FishingState{Phase: FishingWaiting, Deadline: now.Add(wait)}
	return c.fishing
}

// ReelIn acts on the line. During the bite window it triggers the
// reward roll and a cooldown; during the waiting phase it scares the
// fish and resets to idle with no reward; otherwise it is a no-op.
func (c *Core) ReelIn(now time.Time) (*MinigameResult, FishingState) {
	switch c.fishing.Phase {
	case FishingWaiting:
		// Reeled too early.
		c.fishing = FishingState{Phase: FishingIdle}
		return nil, c.fishing
	case FishingBite:
		result := c.rollMinigame(fishingTable, fishingRegion)
		c.fishing = FishingState{Phase: FishingCooldown, Deadline: now.Add(fishingCooldown)}
		return result, c.fishing
	default:
		return nil, c.fishing
	}
}

// LeaveFishing resets the machine when the player navigates away,
// superseding any pending deadline.
func (c *Core) LeaveFishing() {
	c.fishing = FishingState{Phase: FishingIdle}
}

// advanceFishing moves the machine past due deadlines: waiting turns
// into a bite with a fixed reaction window; an unanswered bite reverts
// to idle with no reward; cooldown ends back at idle.
func (c *Core) advanceFishing(now time.Time) []Event {
	if c.fishing.Phase == FishingIdle || now.Before(c.fishing.Deadline) {
		return nil
	}
	switch c.fishing.Phase {
	case FishingWaiting:
		c.fishing = FishingState{Phase: FishingBite, Deadline: now.Add(fishingBiteWindow)}
		return []Event{{Type: EventFishingBite}}
	case FishingBite:
		c.fishing = FishingState{Phase: FishingIdle}
		return []Event{{Type: EventFishingLost}}
	case FishingCooldown:
		c.fishing = FishingState{Phase: FishingIdle}
		return []Event{{Type: EventFishingReady}}
	}
	return nil
}
