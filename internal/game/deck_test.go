// internal/game/deck_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[string]bool, 52)
	for i := 0; i < 52; i++ {
		c, err := d.DealOne()
		require.NoError(t, err)
		key := fmt.Sprintf("%s-%s", c.Suit, c.Rank)
		assert.False(t, seen[key], "duplicate card %s", key)
		seen[key] = true
		assert.GreaterOrEqual(t, c.Value, 2)
		assert.LessOrEqual(t, c.Value, 14)
	}
	assert.Equal(t, 0, d.Remaining())
}

func TestDealOneExhausted(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 52; i++ {
		_, err := d.DealOne()
		require.NoError(t, err)
	}
	_, err := d.DealOne()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestFaceCardValues(t *testing.T) {
	d := NewDeck()
	values := map[string]int{}
	for i := 0; i < 52; i++ {
		c, err := d.DealOne()
		require.NoError(t, err)
		values[c.Rank] = c.Value
	}
	assert.Equal(t, 11, values["J"])
	assert.Equal(t, 12, values["Q"])
	assert.Equal(t, 13, values["K"])
	assert.Equal(t, 14, values["A"])
	assert.Equal(t, 10, values["10"])
	assert.Equal(t, 2, values["2"])
}
