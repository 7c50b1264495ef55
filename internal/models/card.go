// internal/models/card.go
package models

// Suits as they appear on the wire. Clients render these directly.
const (
	SuitHearts   = "hearts"
	SuitDiamonds = "diamonds"
	SuitClubs    = "clubs"
	SuitSpades   = "spades"
)

// Suits lists all four suits in deck-construction order.
var Suits = []string{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Ranks lists the thirteen ranks in ascending order of value.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// RankValues maps each rank to its numeric comparison value (2-10 literal,
// J=11, Q=12, K=13, A=14).
var RankValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 11, "Q": 12, "K": 13, "A": 14,
}

// Card is an immutable playing card. A card is owned by the deck until dealt,
// then by exactly one player's hand for the rest of that hand.
type Card struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}
