package game

import (
	"testing"
	"time"

	"github.com/Mplus-me/rockcardcollector-v1/internal/engine"
)

func TestSiftingRoundResolvesOnce(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0.99)) // 99 lands on the empty-handed row
	t0 := time.UnixMilli(0)

	state := c.StartSifting(t0)
	if !state.Active {
		t.Fatal("expected an active round")
	}
	if want := t0.Add(siftingRoundLength); !state.Deadline.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, state.Deadline)
	}

	result, ok := c.SiftAction(2, t0.Add(5*time.Second))
	if !ok || result == nil {
		t.Fatal("expected the action to resolve")
	}
	if result.Outcome != OutcomeNothing {
		t.Errorf("expected empty-handed outcome, got %s", result.Outcome)
	}
	if c.SiftingStatus().Active {
		t.Error("round must end after resolving")
	}

	// A second action without a live round is rejected.
	if _, ok := c.SiftAction(1, t0.Add(6*time.Second)); ok {
		t.Error("action without a live round must not resolve")
	}
}

func TestSiftingRoundExpires(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	t0 := time.UnixMilli(0)

	c.StartSifting(t0)
	events := c.Advance(t0.Add(siftingRoundLength))
	if len(events) != 1 || events[0].Type != EventSiftingExpired {
		t.Fatalf("expected expiry event, got %v", events)
	}
	if c.SiftingStatus().Active {
		t.Error("expired round must end")
	}
	if _, ok := c.SiftAction(0, t0.Add(siftingRoundLength+time.Second)); ok {
		t.Error("action after expiry must not resolve")
	}
}

func TestSiftingRestartSupersedesRound(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	t0 := time.UnixMilli(0)

	c.StartSifting(t0)
	second := c.StartSifting(t0.Add(10 * time.Second))

	// The first round's deadline has been overwritten; at its old
	// expiry instant the superseding round is still live.
	if events := c.Advance(t0.Add(siftingRoundLength)); len(events) != 0 {
		t.Errorf("superseded deadline fired: %v", events)
	}
	if !c.SiftingStatus().Deadline.Equal(second.Deadline) {
		t.Error("restart must install the new deadline")
	}
}

func TestSiftingPackReward(t *testing.T) {
	c := newTestCore(t, engine.NewPercentSequence(20)) // 20 lands on the basic-pack row
	t0 := time.UnixMilli(0)

	before := c.PackCount("basic")
	c.StartSifting(t0)
	result, ok := c.SiftAction(0, t0.Add(time.Second))
	if !ok || result.Outcome != OutcomePack || result.Pack != "basic" {
		t.Fatalf("expected basic pack outcome, got %+v", result)
	}
	if c.PackCount("basic") != before+1 {
		t.Error("pack outcome must grant the pack")
	}
}

func TestLeaveSiftingCancelsRound(t *testing.T) {
	c := newTestCore(t, engine.NewSequence(0))
	t0 := time.UnixMilli(0)

	c.StartSifting(t0)
	c.LeaveSifting()
	if c.SiftingStatus().Active {
		t.Fatal("leaving must end the round")
	}
	if events := c.Advance(t0.Add(time.Minute)); len(events) != 0 {
		t.Errorf("stale round deadline fired after leave: %v", events)
	}
}
