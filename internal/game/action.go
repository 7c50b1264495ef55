// internal/game/action.go
package game

import (
	"errors"

	"github.com/google/uuid"
)

// Validation errors returned by Apply. All leave the engine state unchanged
// and are reported only to the acting participant.
var (
	ErrInvalidPlayer = errors.New("player not found or no longer in the hand")
	ErrOutOfTurn     = errors.New("not your turn")
	ErrInvalidAction = errors.New("invalid action")
)

// ActionKind enumerates the closed set of legal betting moves. Unrecognized
// wire tokens are rejected at parse time and never reach the engine.
type ActionKind int

const (
	ActionPack ActionKind = iota
	ActionCall
	ActionRaise
)

func (k ActionKind) String() string {
	switch k {
	case ActionPack:
		return "pack"
	case ActionCall:
		return "call"
	default:
		return "raise"
	}
}

// Action is a tagged variant: Amount is meaningful only for ActionRaise,
// where it is the requested new table bet.
type Action struct {
	Kind   ActionKind
	Amount int
}

// ParseAction converts a wire token into an Action, failing with
// ErrInvalidAction for anything outside the closed set.
func ParseAction(token string, amount int) (Action, error) {
	switch token {
	case "pack":
		return Action{Kind: ActionPack}, nil
	case "call":
		return Action{Kind: ActionCall}, nil
	case "raise":
		return Action{Kind: ActionRaise, Amount: amount}, nil
	default:
		return Action{}, ErrInvalidAction
	}
}

// ActionResult describes a resolved action for broadcast to the room.
type ActionResult struct {
	PlayerID   uuid.UUID `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Action     string    `json:"action"`
	Amount     int       `json:"amount"`
}
