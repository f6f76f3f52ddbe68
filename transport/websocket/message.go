package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/blackjack-backend/internal/blackjack"
	"github.com/rocketscienceinc/blackjack-backend/internal/entity"
)

// Client→server actions.
const (
	actionJoin      = "join"
	actionLeave     = "leave"
	actionDeal      = "deal"
	actionStand     = "stand"
	actionHands     = "hands"
	actionTurnOrder = "turn_order"
	actionRemaining = "remaining"
	actionReset     = "reset"
)

// Server→client push actions. The turn signals reuse the table's
// signal names verbatim.
const (
	actionState  = "state"
	actionResult = "result"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Alias     string                       `json:"alias,omitempty"`
	Accepted  *bool                        `json:"accepted,omitempty"`
	Card      *entity.Card                 `json:"card,omitempty"`
	Remaining *int                         `json:"remaining,omitempty"`
	Hands     map[string][]entity.Card     `json:"hands,omitempty"`
	TurnOrder []string                     `json:"turn_order,omitempty"`
	Outcomes  map[string]blackjack.Outcome `json:"outcomes,omitempty"`
	Error     string                       `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}
