package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name         string
		playerPoints int
		dealerPoints int
		want         Outcome
	}{
		{
			name:         "Busted player loses even against a busted dealer",
			playerPoints: 22,
			dealerPoints: 19,
			want:         Outcome{Result: ResultLose, Reason: ReasonBust},
		},
		{
			name:         "Dealer bust is a win for any standing player",
			playerPoints: 20,
			dealerPoints: 22,
			want:         Outcome{Result: ResultWin, Reason: ReasonDealerBust},
		},
		{
			name:         "Higher total wins",
			playerPoints: 20,
			dealerPoints: 18,
			want:         Outcome{Result: ResultWin, Reason: ReasonHigher},
		},
		{
			name:         "Equal totals push",
			playerPoints: 19,
			dealerPoints: 19,
			want:         Outcome{Result: ResultPush, Reason: ReasonEqual},
		},
		{
			name:         "Lower total loses",
			playerPoints: 17,
			dealerPoints: 20,
			want:         Outcome{Result: ResultLose, Reason: ReasonLower},
		},
		{
			name:         "Both bust is still a player loss",
			playerPoints: 25,
			dealerPoints: 24,
			want:         Outcome{Result: ResultLose, Reason: ReasonBust},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Settle(tt.playerPoints, tt.dealerPoints))
		})
	}
}

func TestSettleAll(t *testing.T) {
	// Given: two finished players against a dealer on 19
	playerPoints := map[string]int{
		"ALICE": 20,
		"BOB":   22,
	}

	// When: settling the round
	outcomes := SettleAll(playerPoints, 19)

	// Then: each player's outcome follows the table independently
	assert.Equal(t, Outcome{Result: ResultWin, Reason: ReasonHigher}, outcomes["ALICE"])
	assert.Equal(t, Outcome{Result: ResultLose, Reason: ReasonBust}, outcomes["BOB"])
}

func TestDealerDraws(t *testing.T) {
	t.Run("Dealer draws at or below seventeen", func(t *testing.T) {
		assert.True(t, DealerDraws(2))
		assert.True(t, DealerDraws(17))
	})

	t.Run("Dealer stands above seventeen", func(t *testing.T) {
		assert.False(t, DealerDraws(18))
		assert.False(t, DealerDraws(25))
	})
}

func TestIsBust(t *testing.T) {
	assert.False(t, IsBust(21))
	assert.True(t, IsBust(22))
}
