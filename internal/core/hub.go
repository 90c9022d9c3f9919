package core

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Policy holds behavior switches that deployments may want to harden.
type Policy struct {
	// EnforceFriendGate blocks joins that fail the friendship check.
	// When false the check only emits a not-friend notification and the
	// join proceeds.
	EnforceFriendGate bool
	// RejectSpoofedSender drops data frames whose claimed sender does not
	// match the connection's authenticated identity. When false the
	// mismatch is logged and the frame is relayed anyway.
	RejectSpoofedSender bool
}

// Hub is the lifecycle coordinator. A single goroutine started by Run owns
// the Connection Registry and Room Table; connect, join, leave, disconnect
// and relay all enter through the command channel and execute one at a
// time, which keeps the tables mutually consistent without locks.
//
// External collaborators (identity resolution, the friendship gate) are
// called in the requesting connection's goroutine, bounded by their own
// timeouts, so the run loop itself never blocks on I/O.
type Hub struct {
	cmds chan *command

	registry *Registry
	rooms    *RoomTable
	presence *Presence
	relay    *Relay
	gate     Authorizer
	policy   Policy
	log      *zerolog.Logger
}

// NewHub constructs a hub. A nil gate authorizes every join, which is
// only meant for tests.
func NewHub(gate Authorizer, policy Policy, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	registry := NewRegistry()
	return &Hub{
		cmds:     make(chan *command, 64),
		registry: registry,
		rooms:    NewRoomTable(),
		presence: NewPresence(registry, logger),
		relay:    NewRelay(registry, logger),
		gate:     gate,
		policy:   policy,
		log:      logger,
	}
}

// Run processes commands until the context is canceled. It must be running
// before any client enters the hub.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case cmd := <-h.cmds:
			h.dispatch(cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(cmd *command) {
	switch cmd.kind {
	case cmdRegister:
		h.handleRegister(cmd.client)
	case cmdJoinRoom:
		h.handleJoin(cmd.client, cmd.room, cmd.authorized, cmd.gateErr)
	case cmdLeaveRoom:
		h.handleLeave(cmd.client, cmd.room)
	case cmdDisconnect:
		h.handleDisconnect(cmd.client)
	case cmdRelay:
		h.handleRelay(cmd.client, cmd.claimedSender, cmd.target, cmd.signalKind, cmd.payload)
	case cmdSnapshot:
		cmd.reply <- h.snapshot()
	}
}

// Connect registers an authenticated connection. Identity resolution has
// already happened in the transport layer; a connection that failed it
// never reaches the hub.
func (h *Hub) Connect(client *Client) {
	h.cmds <- &command{kind: cmdRegister, client: client}
}

// JoinRoom runs the friendship gate in the caller's goroutine, then hands
// the join to the run loop. The gate outcome rides along on the command so
// the loop itself never waits on the friend store.
func (h *Hub) JoinRoom(ctx context.Context, client *Client, roomID string) {
	authorized := true
	var gateErr error
	if h.gate != nil {
		authorized, gateErr = h.gate.IsAuthorized(ctx, client.UserID, roomID)
	}
	h.cmds <- &command{
		kind:       cmdJoinRoom,
		client:     client,
		room:       roomID,
		authorized: authorized,
		gateErr:    gateErr,
	}
}

// LeaveRoom leaves the given room, or the connection's current room when
// roomID is empty.
func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.cmds <- &command{kind: cmdLeaveRoom, client: client, room: roomID}
}

// Disconnect tears down a connection: leaves its room, unregisters it.
// Safe to call more than once; the transport fires it both for explicit
// leave-and-close and for socket-level disconnects.
func (h *Hub) Disconnect(client *Client) {
	h.cmds <- &command{kind: cmdDisconnect, client: client}
}

// RelayData forwards a signaling payload to the addressed user.
func (h *Hub) RelayData(client *Client, claimedSender, target, signalKind string, payload json.RawMessage) {
	h.cmds <- &command{
		kind:          cmdRelay,
		client:        client,
		claimedSender: claimedSender,
		target:        target,
		signalKind:    signalKind,
		payload:       payload,
	}
}

// Snapshot returns a consistent copy of the hub's tables.
func (h *Hub) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	h.cmds <- &command{kind: cmdSnapshot, reply: reply}
	return <-reply
}

func (h *Hub) handleRegister(client *Client) {
	if err := h.registry.Register(client); err != nil {
		// Duplicate connection ids should not occur under correct
		// transport semantics. Log and let the new registration win.
		h.log.Error().Err(err).
			Str("conn_id", client.ConnID).
			Str("user_id", client.UserID).
			Msg("re-registering connection")
		h.registry.Unregister(client.ConnID)
		_ = h.registry.Register(client)
	}
	h.log.Info().
		Str("conn_id", client.ConnID).
		Str("user_id", client.UserID).
		Str("name", client.Name).
		Msg("connection registered")
}

func (h *Hub) handleJoin(client *Client, roomID string, authorized bool, gateErr error) {
	if _, err := h.registry.Resolve(client.ConnID); err != nil {
		// Disconnected while the gate check was in flight; joining now
		// would leave a dangling member.
		h.log.Debug().Str("conn_id", client.ConnID).Msg("join after disconnect, ignoring")
		return
	}

	if !authorized {
		if gateErr != nil {
			h.log.Warn().Err(gateErr).
				Str("user_id", client.UserID).
				Str("room_id", roomID).
				Msg("friendship check unavailable, treating as denied")
		}
		client.send(&Event{Kind: EventNotFriend, Room: roomID})
		if h.policy.EnforceFriendGate {
			return
		}
	}

	// One room per connection: joining a second room leaves the first.
	if current, ok := h.rooms.RoomOf(client.ConnID); ok && current != roomID {
		h.leaveRoom(client, current)
	}

	already := h.rooms.IsMember(roomID, client.UserID)
	_, members := h.rooms.Join(roomID, client.UserID)
	h.rooms.SetRoom(client.ConnID, roomID)
	if already {
		// Redundant join: refresh the joiner's roster, spare the peers.
		h.presence.SendRoster(roomID, client, members)
		return
	}
	h.presence.BroadcastJoin(roomID, client, members)
}

func (h *Hub) handleLeave(client *Client, roomID string) {
	if roomID == "" {
		current, ok := h.rooms.RoomOf(client.ConnID)
		if !ok {
			return
		}
		roomID = current
	}
	h.leaveRoom(client, roomID)
}

func (h *Hub) handleDisconnect(client *Client) {
	if roomID, ok := h.rooms.RoomOf(client.ConnID); ok {
		h.leaveRoom(client, roomID)
	}
	h.registry.Unregister(client.ConnID)
}

// leaveRoom is the single internal leave operation both explicit
// leave-room frames and transport disconnects funnel into. Removing a
// user who already left is a no-op, so a doubled event cannot
// double-decrement membership or duplicate notifications.
func (h *Hub) leaveRoom(client *Client, roomID string) {
	h.rooms.ClearRoom(client.ConnID, roomID)
	if !h.rooms.Leave(roomID, client.UserID) {
		return
	}
	h.presence.BroadcastLeave(roomID, client.UserID, client.ConnID, h.rooms.Members(roomID))
}

func (h *Hub) handleRelay(client *Client, claimedSender, target, signalKind string, payload json.RawMessage) {
	if claimedSender != client.UserID {
		h.log.Warn().
			Str("conn_id", client.ConnID).
			Str("user_id", client.UserID).
			Str("claimed_sender", claimedSender).
			Msg("sender field does not match authenticated identity")
		if h.policy.RejectSpoofedSender {
			return
		}
	}
	h.relay.Forward(client.UserID, target, signalKind, payload)
}

func (h *Hub) snapshot() Snapshot {
	snap := Snapshot{
		Conns:  make(map[string]string, len(h.registry.conns)),
		Users:  make(map[string]string, len(h.registry.users)),
		Rooms:  make(map[string][]string, len(h.rooms.members)),
		RoomOf: make(map[string]string, len(h.rooms.roomOf)),
	}
	for connID, c := range h.registry.conns {
		snap.Conns[connID] = c.UserID
	}
	for userID, connID := range h.registry.users {
		snap.Users[userID] = connID
	}
	for roomID := range h.rooms.members {
		snap.Rooms[roomID] = h.rooms.Members(roomID)
	}
	for connID, roomID := range h.rooms.roomOf {
		snap.RoomOf[connID] = roomID
	}
	return snap
}
