package entity

// DealerName is the reserved identity for the house hand.
const DealerName = "DEALER"

// Hands tracks the ordered card collections of every identity at the
// table, the dealer included. Hands are created lazily on first deal
// and kept until the round is reset.
type Hands struct {
	cards map[string][]Card
}

func NewHands() *Hands {
	return &Hands{
		cards: make(map[string][]Card),
	}
}

// DealTo - prepends a card to the identity's hand, so the most
// recently dealt card is always first.
func (that *Hands) DealTo(identity string, card Card) {
	that.cards[identity] = append([]Card{card}, that.cards[identity]...)
}

// Has reports whether the identity holds any cards.
func (that *Hands) Has(identity string) bool {
	return len(that.cards[identity]) > 0
}

// Drop - removes the identity's hand entirely. Only used between
// rounds; hands are never deleted while a round is in progress.
func (that *Hands) Drop(identity string) {
	delete(that.cards, identity)
}

// Points - the hand total under the fixed ace-is-one rule.
func (that *Hands) Points(identity string) int {
	points := 0
	for _, card := range that.cards[identity] {
		points += card.Points()
	}

	return points
}

// Snapshot - a deep copy of every hand; callers may mutate it freely.
func (that *Hands) Snapshot() map[string][]Card {
	snapshot := make(map[string][]Card, len(that.cards))
	for identity, hand := range that.cards {
		snapshot[identity] = append([]Card(nil), hand...)
	}

	return snapshot
}

// Reset - drops every hand for a new round.
func (that *Hands) Reset() {
	that.cards = make(map[string][]Card)
}
