package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peercall/peercall-server/internal/store"
)

// Authorizer decides whether a user may join another user's room.
type Authorizer interface {
	IsAuthorized(ctx context.Context, requester, roomOwner string) (bool, error)
}

// FriendGate authorizes cross-room joins against the external friend
// store. Joining one's own room is trivially authorized. A store failure
// or timeout yields ErrAuthUnavailable, which callers treat as a denial.
type FriendGate struct {
	friends store.FriendStore
	timeout time.Duration
	log     *zerolog.Logger
}

// NewFriendGate creates a friendship gate with a per-query timeout.
func NewFriendGate(friends store.FriendStore, timeout time.Duration, logger *zerolog.Logger) *FriendGate {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FriendGate{
		friends: friends,
		timeout: timeout,
		log:     logger,
	}
}

// IsAuthorized reports whether requester may join roomOwner's room.
func (g *FriendGate) IsAuthorized(ctx context.Context, requester, roomOwner string) (bool, error) {
	if requester == roomOwner {
		return true, nil
	}
	if g.friends == nil {
		return false, fmt.Errorf("%w: no friend store configured", ErrAuthUnavailable)
	}

	queryCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ok, err := g.friends.HasFriendEdge(queryCtx, requester, roomOwner)
	if err != nil {
		g.log.Warn().Err(err).
			Str("user_id", requester).
			Str("room_id", roomOwner).
			Msg("friend lookup failed, denying")
		return false, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	return ok, nil
}
