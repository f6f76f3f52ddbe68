package table

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/blackjack-backend/internal/apperror"
	"github.com/rocketscienceinc/blackjack-backend/internal/blackjack"
	"github.com/rocketscienceinc/blackjack-backend/internal/entity"
)

const (
	StatusAwaitingPlayers = "awaiting_players"
	StatusActive          = "active"
	StatusDealerAutoplay  = "dealer_autoplay"
	StatusComplete        = "complete"
)

const bootstrapCards = 2

// Table is the single shared blackjack table. It composes the shoe,
// the hand tracker, the session registry and the turn state machine
// behind one mutex; every mutation is serialized through it. Pushes
// triggered by a call are collected under the lock and delivered only
// after it is released.
type Table struct {
	logger   *slog.Logger
	notifier Notifier

	maxPlayers int

	mu        sync.Mutex
	deck      *entity.Deck
	hands     *entity.Hands
	registry  *registry
	status    string
	turnOrder []string
	turnIdx   int
}

func New(logger *slog.Logger, notifier Notifier, maxPlayers int) *Table {
	return &Table{
		logger:   logger.With("component", "table"),
		notifier: notifier,

		maxPlayers: maxPlayers,

		deck:     entity.NewDeck(),
		hands:    entity.NewHands(),
		registry: newRegistry(),
		status:   StatusAwaitingPlayers,
	}
}

// Join seats a new alias bound to the given connection. The first
// session bootstraps the round: two cards to the dealer and two to the
// joiner. The second session activates the round and hands the turn to
// the first-joined identity. Joins while a round is in progress are
// seated but sit out until the next reset.
func (that *Table) Join(alias, connID string) error {
	var pending []func()
	defer that.flush(&pending)

	that.mu.Lock()
	defer that.mu.Unlock()

	identity := NormalizeAlias(alias)
	if err := that.registry.add(identity, connID, that.maxPlayers); err != nil {
		return fmt.Errorf("failed to seat %q: %w", identity, err)
	}

	log := that.logger.With("method", "Join", "identity", identity)

	if that.status == StatusAwaitingPlayers {
		if !that.hands.Has(entity.DealerName) {
			if err := that.dealN(entity.DealerName, bootstrapCards); err != nil {
				return err
			}
		}

		if err := that.dealN(identity, bootstrapCards); err != nil {
			return err
		}

		that.turnOrder = append(that.turnOrder, identity)
	} else {
		log.Info("round in progress, seating as spectator")
	}

	if that.status == StatusAwaitingPlayers && len(that.turnOrder) >= 2 {
		that.activateRound(&pending)
	}

	that.pushState(&pending)

	log.Info("player joined the table", "players", that.registry.count())

	return nil
}

// Leave unseats the alias; a no-op if it is not present. If the
// departing identity held the turn, the turn advances as if it stood.
func (that *Table) Leave(alias string) {
	var pending []func()
	defer that.flush(&pending)

	that.mu.Lock()
	defer that.mu.Unlock()

	identity := NormalizeAlias(alias)
	if _, ok := that.registry.connOf(identity); !ok {
		return
	}

	log := that.logger.With("method", "Leave", "identity", identity)

	wasCurrent := that.status == StatusActive && that.currentTurn() == identity

	that.registry.remove(identity)
	that.dropFromTurnOrder(identity)

	if that.status == StatusAwaitingPlayers {
		that.hands.Drop(identity)
	}

	switch {
	case that.status == StatusActive && len(that.turnOrder) == 0:
		// the last in-round player walked away mid-round
		that.resetLocked(&pending)
	case wasCurrent:
		if that.turnIdx >= len(that.turnOrder) {
			that.runDealerAutoplay(&pending)
		} else {
			that.pushTurnSignal(that.currentTurn(), SignalYourTurn, &pending)
		}
	}

	that.pushState(&pending)

	log.Info("player left the table", "players", that.registry.count())
}

// Deal gives one card to the caller's hand. The caller is resolved
// from its connection; only the current turn holder may draw. Going
// bust does not advance the turn, the identity must still stand.
func (that *Table) Deal(connID string) (entity.Card, error) {
	var pending []func()
	defer that.flush(&pending)

	that.mu.Lock()
	defer that.mu.Unlock()

	identity, err := that.confirmTurnHolder(connID)
	if err != nil {
		return entity.Card{}, err
	}

	card, err := that.deck.DealNext()
	if err != nil {
		return entity.Card{}, fmt.Errorf("failed to deal to %q: %w", identity, err)
	}

	that.hands.DealTo(identity, card)

	log := that.logger.With("method", "Deal", "identity", identity)
	log.Info("card dealt", "card", card.String(), "points", that.hands.Points(identity))

	that.pushState(&pending)

	return card, nil
}

// Stand ends the caller's turn. A non-terminal identity passes the
// turn along; the last identity in the turn order triggers the dealer
// autoplay, which runs to completion before the lock is released.
func (that *Table) Stand(connID string) error {
	var pending []func()
	defer that.flush(&pending)

	that.mu.Lock()
	defer that.mu.Unlock()

	identity, err := that.confirmTurnHolder(connID)
	if err != nil {
		return err
	}

	if that.turnIdx < len(that.turnOrder)-1 {
		that.turnIdx++

		that.pushTurnSignal(identity, SignalWaiting, &pending)
		that.pushTurnSignal(that.currentTurn(), SignalYourTurn, &pending)

		that.logger.Info("turn advanced", "method", "Stand", "from", identity, "to", that.currentTurn())

		return nil
	}

	that.runDealerAutoplay(&pending)

	return nil
}

// ResetRound restocks the shoe, clears every hand and deals the seated
// players back in, in join order. Rejected while a round is being played;
// when to call it is the surrounding service's policy.
func (that *Table) ResetRound() error {
	var pending []func()
	defer that.flush(&pending)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusActive || that.status == StatusDealerAutoplay {
		return fmt.Errorf("failed to reset: %w", apperror.ErrRoundNotComplete)
	}

	that.resetLocked(&pending)
	that.pushState(&pending)

	that.logger.Info("round reset", "method", "ResetRound", "players", that.registry.count())

	return nil
}

// AllHands - a snapshot of every hand, the dealer's included.
func (that *Table) AllHands() map[string][]entity.Card {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.hands.Snapshot()
}

// TurnOrder - the identities playing the current round, in join order.
// The dealer is never part of it.
func (that *Table) TurnOrder() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.turnOrder...)
}

// Remaining - live shoe telemetry.
func (that *Table) Remaining() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.deck.Remaining()
}

// Status - the round state.
func (that *Table) Status() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status
}

// CurrentTurn - the identity whose turn it is, if the round is active.
func (that *Table) CurrentTurn() (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != StatusActive {
		return "", false
	}

	return that.currentTurn(), true
}

// Resolve - the identity bound to a connection.
func (that *Table) Resolve(connID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.registry.resolve(connID)
}

// ----- internals; every method below expects the lock to be held -----

func (that *Table) currentTurn() string {
	return that.turnOrder[that.turnIdx]
}

func (that *Table) confirmTurnHolder(connID string) (string, error) {
	identity, ok := that.registry.resolve(connID)
	if !ok {
		return "", apperror.ErrUnknownCaller
	}

	if that.status != StatusActive {
		return "", fmt.Errorf("%q cannot act: %w", identity, apperror.ErrRoundNotActive)
	}

	if that.currentTurn() != identity {
		return "", fmt.Errorf("%q cannot act: %w", identity, apperror.ErrOutOfTurn)
	}

	return identity, nil
}

func (that *Table) dealN(identity string, n int) error {
	for i := 0; i < n; i++ {
		card, err := that.deck.DealNext()
		if err != nil {
			return fmt.Errorf("failed to deal to %q: %w", identity, err)
		}

		that.hands.DealTo(identity, card)
	}

	return nil
}

func (that *Table) dropFromTurnOrder(identity string) {
	for i, existing := range that.turnOrder {
		if existing != identity {
			continue
		}

		that.turnOrder = append(that.turnOrder[:i], that.turnOrder[i+1:]...)
		if i < that.turnIdx {
			that.turnIdx--
		}

		return
	}
}

func (that *Table) activateRound(pending *[]func()) {
	that.status = StatusActive
	that.turnIdx = 0

	that.pushTurnSignal(that.currentTurn(), SignalRoundStart, pending)
}

// runDealerAutoplay draws for the dealer until it exceeds the stand
// threshold, then settles the round and queues the result broadcast.
// The loop is bounded by the shoe; an exhausted shoe settles with the
// cards already on the table.
func (that *Table) runDealerAutoplay(pending *[]func()) {
	that.status = StatusDealerAutoplay

	log := that.logger.With("method", "runDealerAutoplay")

	for blackjack.DealerDraws(that.hands.Points(entity.DealerName)) {
		card, err := that.deck.DealNext()
		if err != nil {
			log.Error("shoe ran out during dealer autoplay", "error", err)
			break
		}

		that.hands.DealTo(entity.DealerName, card)
		log.Info("dealer drew", "card", card.String(), "points", that.hands.Points(entity.DealerName))
	}

	that.status = StatusComplete

	playerPoints := make(map[string]int, len(that.turnOrder))
	for _, identity := range that.turnOrder {
		playerPoints[identity] = that.hands.Points(identity)
	}

	outcomes := blackjack.SettleAll(playerPoints, that.hands.Points(entity.DealerName))

	snapshot := that.snapshot()
	connIDs := that.registry.connIDs()
	notifier := that.notifier

	*pending = append(*pending, func() {
		notifier.NotifyState(connIDs, snapshot)
		notifier.NotifyResult(connIDs, snapshot, outcomes)
	})

	log.Info("round complete", "dealer_points", that.hands.Points(entity.DealerName))
}

func (that *Table) resetLocked(pending *[]func()) {
	that.deck = entity.NewDeck()
	that.hands.Reset()
	that.turnOrder = that.registry.identities()
	that.turnIdx = 0
	that.status = StatusAwaitingPlayers

	if len(that.turnOrder) == 0 {
		return
	}

	if err := that.dealN(entity.DealerName, bootstrapCards); err != nil {
		that.logger.Error("failed to bootstrap dealer hand", "error", err)
		return
	}

	for _, identity := range that.turnOrder {
		if err := that.dealN(identity, bootstrapCards); err != nil {
			that.logger.Error("failed to bootstrap hand", "identity", identity, "error", err)
			return
		}
	}

	if len(that.turnOrder) >= 2 {
		that.activateRound(pending)
	}
}

func (that *Table) snapshot() Snapshot {
	return Snapshot{
		Remaining: that.deck.Remaining(),
		Hands:     that.hands.Snapshot(),
	}
}

func (that *Table) pushState(pending *[]func()) {
	snapshot := that.snapshot()
	connIDs := that.registry.connIDs()
	notifier := that.notifier

	*pending = append(*pending, func() {
		notifier.NotifyState(connIDs, snapshot)
	})
}

func (that *Table) pushTurnSignal(identity, signal string, pending *[]func()) {
	connID, ok := that.registry.connOf(identity)
	if !ok {
		return
	}

	notifier := that.notifier

	*pending = append(*pending, func() {
		notifier.NotifyTurn(connID, signal)
	})
}

// flush runs the queued pushes. Deferred before the unlock in every
// mutating call, so notifications always go out after the lock is
// released and a client handler re-entering the table cannot deadlock.
func (that *Table) flush(pending *[]func()) {
	for _, push := range *pending {
		push()
	}
}
