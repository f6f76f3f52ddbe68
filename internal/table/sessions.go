package table

import (
	"strings"

	"github.com/rocketscienceinc/blackjack-backend/internal/apperror"
	"github.com/rocketscienceinc/blackjack-backend/internal/entity"
)

// NormalizeAlias - aliases are case-insensitive; the canonical form is upper-case.
func NormalizeAlias(alias string) string {
	return strings.ToUpper(strings.TrimSpace(alias))
}

type session struct {
	identity string
	connID   string
	joinSeq  int
}

// registry owns the alias→session map, the explicit connection→identity
// reverse map and the join-order list. It is not safe for concurrent
// use on its own; the Table lock guards every call.
type registry struct {
	sessions map[string]*session
	byConn   map[string]string
	order    []string
	nextSeq  int
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[string]*session),
		byConn:   make(map[string]string),
	}
}

func (that *registry) add(identity, connID string, maxPlayers int) error {
	if identity == "" || identity == entity.DealerName {
		return apperror.ErrDuplicateAlias
	}

	if _, ok := that.sessions[identity]; ok {
		return apperror.ErrDuplicateAlias
	}

	// one seat per connection; rebinding would leave a ghost seat
	if _, ok := that.byConn[connID]; ok {
		return apperror.ErrAlreadyJoined
	}

	if len(that.sessions) >= maxPlayers {
		return apperror.ErrTableFull
	}

	that.sessions[identity] = &session{
		identity: identity,
		connID:   connID,
		joinSeq:  that.nextSeq,
	}
	that.nextSeq++

	that.byConn[connID] = identity
	that.order = append(that.order, identity)

	return nil
}

// remove - drops the identity from the registry; a no-op if it is absent.
func (that *registry) remove(identity string) {
	sess, ok := that.sessions[identity]
	if !ok {
		return
	}

	delete(that.sessions, identity)
	delete(that.byConn, sess.connID)

	for i, existing := range that.order {
		if existing == identity {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// resolve - the identity bound to a connection, if any.
func (that *registry) resolve(connID string) (string, bool) {
	identity, ok := that.byConn[connID]
	return identity, ok
}

func (that *registry) connOf(identity string) (string, bool) {
	sess, ok := that.sessions[identity]
	if !ok {
		return "", false
	}

	return sess.connID, true
}

// identities - the seated aliases in join order.
func (that *registry) identities() []string {
	return append([]string(nil), that.order...)
}

func (that *registry) connIDs() []string {
	ids := make([]string, 0, len(that.order))
	for _, identity := range that.order {
		ids = append(ids, that.sessions[identity].connID)
	}

	return ids
}

func (that *registry) count() int {
	return len(that.sessions)
}
