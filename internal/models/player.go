// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is the per-hand record for a seated participant. It is created from
// the room roster when a hand is dealt and discarded when the hand ends.
//
// Active == false excludes the player from turn rotation and winner
// evaluation; Folded == true always implies Active == false.
type Player struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Hand           []*Card   `json:"-"`
	CurrentBet     int       `json:"bet"`
	TotalCommitted int       `json:"totalBet"`
	Folded         bool      `json:"folded"`
	Active         bool      `json:"isPlaying"`
}
