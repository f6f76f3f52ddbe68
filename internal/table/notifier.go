package table

import (
	"github.com/rocketscienceinc/blackjack-backend/internal/blackjack"
	"github.com/rocketscienceinc/blackjack-backend/internal/entity"
)

const (
	SignalYourTurn   = "your_turn"
	SignalWaiting    = "waiting"
	SignalRoundStart = "round_start"
)

// Snapshot is an immutable copy of the shoe telemetry and every hand,
// taken at broadcast time.
type Snapshot struct {
	Remaining int                      `json:"remaining"`
	Hands     map[string][]entity.Card `json:"hands"`
}

// Notifier delivers one-way pushes to connected clients. Implementations
// must be best-effort: a slow or unreachable recipient never blocks the
// caller and never affects delivery to other recipients.
type Notifier interface {
	NotifyState(connIDs []string, snapshot Snapshot)
	NotifyTurn(connID, signal string)
	NotifyResult(connIDs []string, snapshot Snapshot, outcomes map[string]blackjack.Outcome)
}
