package blackjack

const (
	// BustLimit is the highest hand total that is still in play.
	BustLimit = 21

	// DealerStandThreshold - the dealer draws while at or below this total.
	DealerStandThreshold = 17
)

const (
	ResultWin  = "win"
	ResultLose = "lose"
	ResultPush = "push"
)

const (
	ReasonBust       = "bust"
	ReasonDealerBust = "dealer_bust"
	ReasonHigher     = "higher"
	ReasonLower      = "lower"
	ReasonEqual      = "equal"
)

// Outcome is the settled result of one player's hand against the dealer.
type Outcome struct {
	Result string `json:"result"`
	Reason string `json:"reason"`
}

// IsBust reports whether a hand total is over the limit.
func IsBust(points int) bool {
	return points > BustLimit
}

// DealerDraws reports whether the dealer keeps drawing at the given total.
func DealerDraws(dealerPoints int) bool {
	return dealerPoints <= DealerStandThreshold
}

// Settle - the outcome for a single player, a pure function of the two
// final totals. The player's bust is checked before the dealer's.
func Settle(playerPoints, dealerPoints int) Outcome {
	switch {
	case IsBust(playerPoints):
		return Outcome{Result: ResultLose, Reason: ReasonBust}
	case IsBust(dealerPoints):
		return Outcome{Result: ResultWin, Reason: ReasonDealerBust}
	case playerPoints > dealerPoints:
		return Outcome{Result: ResultWin, Reason: ReasonHigher}
	case playerPoints == dealerPoints:
		return Outcome{Result: ResultPush, Reason: ReasonEqual}
	default:
		return Outcome{Result: ResultLose, Reason: ReasonLower}
	}
}

// SettleAll - outcomes for every player's final total against the dealer's.
func SettleAll(playerPoints map[string]int, dealerPoints int) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(playerPoints))
	for identity, points := range playerPoints {
		outcomes[identity] = Settle(points, dealerPoints)
	}

	return outcomes
}
