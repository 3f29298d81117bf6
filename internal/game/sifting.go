package game

import "time"

// SiftingState is the sifting round timer: a single active flag plus
// its deadline, advanced by the shared tick.
type SiftingState struct {
	Active   bool      `json:"active"`
	Deadline time.Time `json:"deadline,omitzero"`
}

const siftingRoundLength = 20 * time.Second

// SiftingStatus returns the current round state.
func (c *Core) SiftingStatus() SiftingState {
	return c.sifting
}

// StartSifting opens a timed round. Starting while a round is active
// supersedes it: the old deadline is overwritten, so it can never
// expire a round it no longer belongs to.
func (c *Core) StartSifting(now time.Time) SiftingState {
	c.sifting = SiftingState{Active: true, Deadline: now.Add(siftingRoundLength)}
	return c.sifting
}

// SiftAction resolves the round: the player picked a rock pile before
// the deadline. The index is presentation detail only; the outcome
// table decides the reward. Acting with no live round reports ok=false
// and changes nothing.
func (c *Core) SiftAction(rockIndex int, now time.Time) (*MinigameResult, bool) {
	if !c.sifting.Active || !now.Before(c.sifting.Deadline) {
		return nil, false
	}
	result := c.rollMinigame(siftingTable, siftingRegion)
	c.sifting = SiftingState{}
	return result, true
}

// LeaveSifting abandons any live round when the player navigates away.
func (c *Core) LeaveSifting() {
	c.sifting = SiftingState{}
}

// advanceSifting expires a round whose deadline passed unanswered.
func (c *Core) advanceSifting(now time.Time) []Event {
	if !c.sifting.Active || now.Before(c.sifting.Deadline) {
		return nil
	}
	c.sifting = SiftingState{}
	return []Event{{Type: EventSiftingExpired}}
}
