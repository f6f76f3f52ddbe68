package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/blackjack-backend/internal/apperror"
)

func (that *Server) handleJoin(cl *client, msg *Message) error {
	log := that.logger.With("method", "handleJoin", "connID", cl.id)

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Alias == "" {
		log.Error("alias is missing in payload")
		return that.sendErrorResponse(cl, msg.Action, "alias is required")
	}

	accepted := true

	err := that.table.Join(payloadReq.Alias, cl.id)
	switch {
	case errors.Is(err, apperror.ErrDuplicateAlias), errors.Is(err, apperror.ErrAlreadyJoined), errors.Is(err, apperror.ErrTableFull):
		accepted = false
	case err != nil:
		log.Error("failed to join", "alias", payloadReq.Alias, "error", err)
		return that.sendErrorResponse(cl, msg.Action, "failed to join the table")
	}

	payloadResp := Payload{
		Alias:    payloadReq.Alias,
		Accepted: &accepted,
	}
	if err != nil {
		payloadResp.Error = err.Error()
	}

	if err = that.sendMessage(cl, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("join handled", "alias", payloadReq.Alias, "accepted", accepted)

	return nil
}

// handleLeave - one-way: no response is sent, whatever the result.
func (that *Server) handleLeave(cl *client, msg *Message) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	alias := payloadReq.Alias
	if alias == "" {
		// fall back to the identity bound to this connection
		identity, ok := that.table.Resolve(cl.id)
		if !ok {
			return nil
		}
		alias = identity
	}

	that.table.Leave(alias)

	that.logger.Info("leave handled", "method", "handleLeave", "alias", alias)

	return nil
}

func (that *Server) handleDeal(cl *client, msg *Message) error {
	log := that.logger.With("method", "handleDeal", "connID", cl.id)

	card, err := that.table.Deal(cl.id)
	if err != nil {
		log.Info("deal rejected", "error", err)
		return that.sendErrorResponse(cl, msg.Action, err.Error())
	}

	payloadResp := Payload{
		Card: &card,
	}

	if err = that.sendMessage(cl, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// handleStand - one-way; rejections still get an error response so a
// buggy client can tell it acted out of turn.
func (that *Server) handleStand(cl *client, msg *Message) error {
	if err := that.table.Stand(cl.id); err != nil {
		that.logger.Info("stand rejected", "method", "handleStand", "connID", cl.id, "error", err)
		return that.sendErrorResponse(cl, msg.Action, err.Error())
	}

	return nil
}

func (that *Server) handleHands(cl *client, msg *Message) error {
	payloadResp := Payload{
		Hands: that.table.AllHands(),
	}

	if err := that.sendMessage(cl, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleTurnOrder(cl *client, msg *Message) error {
	payloadResp := Payload{
		TurnOrder: that.table.TurnOrder(),
	}

	if err := that.sendMessage(cl, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleRemaining(cl *client, msg *Message) error {
	remaining := that.table.Remaining()

	payloadResp := Payload{
		Remaining: &remaining,
	}

	if err := that.sendMessage(cl, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleReset(cl *client, msg *Message) error {
	if _, ok := that.table.Resolve(cl.id); !ok {
		that.logger.Info("reset rejected", "method", "handleReset", "connID", cl.id, "error", apperror.ErrUnknownCaller)
		return that.sendErrorResponse(cl, msg.Action, apperror.ErrUnknownCaller.Error())
	}

	if err := that.table.ResetRound(); err != nil {
		that.logger.Info("reset rejected", "method", "handleReset", "error", err)
		return that.sendErrorResponse(cl, msg.Action, err.Error())
	}

	return nil
}
