package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUserConnect notifies room members that a user joined.
	EventUserConnect EventKind = iota
	// EventUserDisconnect notifies room members that a user left.
	EventUserDisconnect
	// EventUserList delivers a full roster snapshot to a joining user.
	EventUserList
	// EventEnterCall tells existing members to start negotiating with the
	// joiner when the joiner enters someone else's room.
	EventEnterCall
	// EventNotFriend tells the joiner the friendship check failed.
	EventNotFriend
	// EventData carries a relayed signaling payload, verbatim.
	EventData
	// EventError notifies the client about a protocol-level error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind   EventKind
	Room   string
	User   string // subject user identity
	Name   string // subject display name
	ConnID string // subject connection id, where the wire contract exposes it
	Roster map[string]string
	// Payload is the untouched signaling body for EventData.
	Payload json.RawMessage
	Error   *CoreError
}
