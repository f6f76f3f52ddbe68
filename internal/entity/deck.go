package entity

import (
	"math/rand"

	"github.com/rocketscienceinc/blackjack-backend/internal/apperror"
)

// DeckSize is the number of cards in a single-deck shoe.
const DeckSize = 52

// Deck is an ordered shoe of 52 unique cards with a deal cursor.
// Cards before the cursor have been dealt; there is no mid-round reshuffle.
type Deck struct {
	cards  []Card
	cursor int
}

// NewDeck - builds the 52-card sequence and shuffles it.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}

	rand.Shuffle(len(cards), func(i, j int) { //nolint: gosec // shuffle quality, not crypto
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// DealNext - returns the card at the cursor and advances it.
// Dealing past the 52nd card is an error, never a reshuffle.
func (that *Deck) DealNext() (Card, error) {
	if that.cursor >= len(that.cards) {
		return Card{}, apperror.ErrDeckExhausted
	}

	card := that.cards[that.cursor]
	that.cursor++

	return card, nil
}

// Remaining - the number of cards not yet dealt.
func (that *Deck) Remaining() int {
	return len(that.cards) - that.cursor
}
