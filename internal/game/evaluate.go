// internal/game/evaluate.go
package game

import (
	"fmt"
	"sort"

	"github.com/teencards/teenpatti/internal/models"
)

// HandCategory orders the three-card hand classes from weakest to strongest.
type HandCategory int

const (
	HighCard HandCategory = iota + 1
	Pair
	Color
	Sequence
	PureSequence
	Trail
)

// String returns the display name clients show at showdown.
func (c HandCategory) String() string {
	switch c {
	case Trail:
		return "Trail"
	case PureSequence:
		return "Pure Sequence"
	case Sequence:
		return "Sequence"
	case Color:
		return "Color"
	case Pair:
		return "Pair"
	default:
		return "High Card"
	}
}

// HandRank is the evaluated strength of a three-card hand. Hands compare by
// category first, then by tiebreak value within the same category.
type HandRank struct {
	Category HandCategory `json:"rank"`
	Tiebreak int          `json:"value"`
	Name     string       `json:"name"`
}

// Beats reports whether r strictly outranks other. Equal category and equal
// tiebreak is a tie, in which case Beats is false both ways.
func (r HandRank) Beats(other HandRank) bool {
	if r.Category != other.Category {
		return r.Category > other.Category
	}
	return r.Tiebreak > other.Tiebreak
}

// Evaluate ranks exactly three cards. It is a pure function and is invariant
// under permutation of its input.
func Evaluate(cards []*models.Card) (HandRank, error) {
	if len(cards) != 3 {
		return HandRank{}, fmt.Errorf("evaluate requires exactly 3 cards, got %d", len(cards))
	}

	values := []int{cards[0].Value, cards[1].Value, cards[2].Value}
	sort.Ints(values)
	lo, mid, hi := values[0], values[1], values[2]
	flush := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit

	if lo == mid && mid == hi {
		return rank(Trail, hi), nil
	}

	// A-2-3 is the lone wraparound straight; the Ace plays low, so its
	// tiebreak is 3, sorting it below 2-3-4 and every higher run.
	wheel := lo == 2 && mid == 3 && hi == 14
	straight := wheel || (mid == lo+1 && hi == mid+1)
	straightHigh := hi
	if wheel {
		straightHigh = 3
	}

	switch {
	case straight && flush:
		return rank(PureSequence, straightHigh), nil
	case straight:
		return rank(Sequence, straightHigh), nil
	case flush:
		return rank(Color, hi), nil
	case lo == mid || mid == hi:
		return rank(Pair, mid), nil
	default:
		return rank(HighCard, hi), nil
	}
}

func rank(category HandCategory, tiebreak int) HandRank {
	return HandRank{Category: category, Tiebreak: tiebreak, Name: category.String()}
}
