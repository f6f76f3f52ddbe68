package entity

import "fmt"

type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

type Rank string

const (
	RankAce   Rank = "ace"
	RankTwo   Rank = "two"
	RankThree Rank = "three"
	RankFour  Rank = "four"
	RankFive  Rank = "five"
	RankSix   Rank = "six"
	RankSeven Rank = "seven"
	RankEight Rank = "eight"
	RankNine  Rank = "nine"
	RankTen   Rank = "ten"
	RankJack  Rank = "jack"
	RankQueen Rank = "queen"
	RankKing  Rank = "king"
)

var (
	Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}
	Ranks = []Rank{
		RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
		RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
	}

	rankPoints = map[Rank]int{
		RankAce:   1,
		RankTwo:   2,
		RankThree: 3,
		RankFour:  4,
		RankFive:  5,
		RankSix:   6,
		RankSeven: 7,
		RankEight: 8,
		RankNine:  9,
		RankTen:   10,
		RankJack:  10,
		RankQueen: 10,
		RankKing:  10,
	}
)

// Card is a single playing card. Immutable once created.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Points - the fixed scoring: ace is always 1, face cards are 10.
func (that Card) Points() int {
	return rankPoints[that.Rank]
}

func (that Card) String() string {
	return fmt.Sprintf("%d of %s", that.Points(), that.Suit)
}
