package game

import "errors"

// Configuration errors abort the single operation with no state
// mutation; they indicate bad catalog data or a caller bug.
var (
	ErrUnknownPack   = errors.New("unknown pack type")
	ErrNoRarityTable = errors.New("pack has no rarity table")
	ErrNoCandidates  = errors.New("no candidate cards even after common fallback")
)

// Rejected preconditions are no-ops: the caller offered an action the
// current state does not allow.
var (
	ErrNoPacks            = errors.New("no packs of that type in inventory")
	ErrBadSlot            = errors.New("expedition slot index out of range")
	ErrSlotNotEmpty       = errors.New("expedition slot is not empty")
	ErrSlotNotComplete    = errors.New("expedition slot is not complete")
	ErrNotDuplicate       = errors.New("card has no spare duplicate copies")
	ErrNoQualifyingReward = errors.New("selection does not reach any pack threshold")
	ErrCardNotOwned       = errors.New("card is not in the collection")
)
