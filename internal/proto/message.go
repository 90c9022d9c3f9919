package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeConnect   = "connect"
	InboundTypeJoinRoom  = "join-room"
	InboundTypeLeaveRoom = "leave-room"
	InboundTypeData      = "data"

	OutboundTypeUserConnect    = "user-connect"
	OutboundTypeUserDisconnect = "user-disconnect"
	OutboundTypeUserList       = "user-list"
	OutboundTypeEnterCall      = "enter-call"
	OutboundTypeNotFriend      = "not-friend"
	OutboundTypeData           = "data"
	OutboundTypeError          = "error"
)

// ConnectData authenticates the connection. Must be the first frame.
type ConnectData struct {
	Token string `json:"token"`
}

// JoinRoomData requests to join a specific room.
type JoinRoomData struct {
	RoomID string `json:"room_id"`
}

// LeaveRoomData requests to leave a room. An empty room id means the
// connection's current room.
type LeaveRoomData struct {
	RoomID string `json:"room_id,omitempty"`
}

// DataHeader is the addressed part of a signaling frame. The rest of the
// payload is opaque and relayed untouched.
type DataHeader struct {
	SenderID string `json:"sender_id"`
	TargetID string `json:"target_id"`
	Type     string `json:"type"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventUserConnect notifies room members that a user joined.
type EventUserConnect struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// EventUserDisconnect notifies room members that a user left. The sid
// field carries the connection id; clients key peer state by it.
type EventUserDisconnect struct {
	SID string `json:"sid"`
	ID  string `json:"id"`
}

// EventUserList delivers a roster snapshot, identity to display name.
type EventUserList struct {
	List map[string]string `json:"list"`
}

// EventEnterCall tells existing members to open negotiation with a peer.
type EventEnterCall struct {
	SID  string `json:"sid"`
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
