// internal/game/deck.go
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/teencards/teenpatti/internal/models"
)

// ErrDeckExhausted is returned when a deal is attempted against an empty deck.
// With at most 6 players receiving 3 cards each (18 of 52) this is unreachable
// in normal play; hitting it means a capacity invariant was broken upstream.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck holds the undealt remainder of a standard 52-card set.
type Deck struct {
	cards []*models.Card
}

// NewDeck builds the full 52-card set and returns it shuffled with a uniform
// random permutation.
func NewDeck() *Deck {
	cards := make([]*models.Card, 0, 52)
	for _, suit := range models.Suits {
		for _, rank := range models.Ranks {
			cards = append(cards, &models.Card{
				Suit:  suit,
				Rank:  rank,
				Value: models.RankValues[rank],
			})
		}
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (*models.Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining reports how many cards are left undealt.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
