package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/blackjack-backend/internal/blackjack"
	"github.com/rocketscienceinc/blackjack-backend/internal/entity"
	"github.com/rocketscienceinc/blackjack-backend/internal/table"
)

// gameTable is the table facade surface the transport needs.
type gameTable interface {
	Join(alias, connID string) error
	Leave(alias string)
	Deal(connID string) (entity.Card, error)
	Stand(connID string) error
	ResetRound() error

	AllHands() map[string][]entity.Card
	TurnOrder() []string
	Remaining() int
	Resolve(connID string) (string, bool)
}

type Server struct {
	logger *slog.Logger
	table  gameTable

	upgrader websocket.Upgrader

	clientsMutex sync.RWMutex
	clients      map[string]*client

	handlers map[string]func(cl *client, msg *Message) error
}

func New(logger *slog.Logger, gameTable gameTable) *Server {
	server := &Server{
		logger: logger.With("component", "ws-server"),
		table:  gameTable,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		clients: make(map[string]*client),

		handlers: make(map[string]func(*client, *Message) error),
	}

	server.handlers[actionJoin] = server.handleJoin
	server.handlers[actionLeave] = server.handleLeave
	server.handlers[actionDeal] = server.handleDeal
	server.handlers[actionStand] = server.handleStand
	server.handlers[actionHands] = server.handleHands
	server.handlers[actionTurnOrder] = server.handleTurnOrder
	server.handlers[actionRemaining] = server.handleRemaining
	server.handlers[actionReset] = server.handleReset

	return server
}

// SetTable binds the table after construction. The server is also the
// table's push notifier, so the two reference each other; the table is
// built second and wired in here, before Start.
func (that *Server) SetTable(gameTable gameTable) {
	that.table = gameTable
}

// Handler - the /ws upgrade endpoint, exposed separately so tests can
// mount it on an httptest server.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveConnection)

	return mux
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	cl := newClient(uuid.NewString(), conn, that.logger)

	that.clientsMutex.Lock()
	that.clients[cl.id] = cl
	that.clientsMutex.Unlock()

	go cl.writePump()

	log.Info("connection established", "connID", cl.id)

	that.readLoop(cl)
	that.disconnect(cl)
}

// readLoop - processes messages from the client until the connection drops.
func (that *Server) readLoop(cl *client) {
	log := that.logger.With("method", "readLoop", "connID", cl.id)

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		var msg Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Error("unknown action", "action", msg.Action)
			continue
		}

		if err = handler(cl, &msg); err != nil {
			log.Error("failed to process message", "action", msg.Action, "error", err)
		}
	}
}

// disconnect unseats whatever identity the connection was bound to and
// forgets the client. Leave is fire-and-forget by design, so a drop
// mid-round behaves exactly like an explicit leave.
func (that *Server) disconnect(cl *client) {
	if identity, ok := that.table.Resolve(cl.id); ok {
		that.table.Leave(identity)
	}

	that.clientsMutex.Lock()
	delete(that.clients, cl.id)
	that.clientsMutex.Unlock()

	cl.close()

	that.logger.Info("connection removed", "method", "disconnect", "connID", cl.id)
}

func (that *Server) clientByID(connID string) (*client, bool) {
	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	cl, ok := that.clients[connID]

	return cl, ok
}

func (that *Server) sendMessage(cl *client, action string, payload Payload) error {
	raw, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %q message: %w", action, err)
	}

	cl.enqueue(raw)

	return nil
}

func (that *Server) sendErrorResponse(cl *client, action, errorMsg string) error {
	if err := that.sendMessage(cl, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

// ----- table.Notifier implementation: best-effort push fan-out -----

// NotifyState pushes the snapshot to every listed connection. Delivery
// is independent per connection; a dead client costs nothing but a log line.
func (that *Server) NotifyState(connIDs []string, snapshot table.Snapshot) {
	remaining := snapshot.Remaining

	raw, err := encodeMessage(actionState, Payload{
		Remaining: &remaining,
		Hands:     snapshot.Hands,
	})
	if err != nil {
		that.logger.Error("failed to encode state push", "error", err)
		return
	}

	that.fanOut(connIDs, raw)
}

func (that *Server) NotifyTurn(connID, signal string) {
	raw, err := encodeMessage(signal, Payload{})
	if err != nil {
		that.logger.Error("failed to encode turn push", "error", err)
		return
	}

	that.fanOut([]string{connID}, raw)
}

func (that *Server) NotifyResult(connIDs []string, snapshot table.Snapshot, outcomes map[string]blackjack.Outcome) {
	remaining := snapshot.Remaining

	raw, err := encodeMessage(actionResult, Payload{
		Remaining: &remaining,
		Hands:     snapshot.Hands,
		Outcomes:  outcomes,
	})
	if err != nil {
		that.logger.Error("failed to encode result push", "error", err)
		return
	}

	that.fanOut(connIDs, raw)
}

func (that *Server) fanOut(connIDs []string, raw []byte) {
	for _, connID := range connIDs {
		cl, ok := that.clientByID(connID)
		if !ok {
			that.logger.Warn("push skipped, connection gone", "connID", connID)
			continue
		}

		cl.enqueue(raw)
	}
}
