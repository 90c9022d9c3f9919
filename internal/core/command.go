package core

import "encoding/json"

type commandKind int

const (
	cmdRegister commandKind = iota
	cmdJoinRoom
	cmdLeaveRoom
	cmdDisconnect
	cmdRelay
	cmdSnapshot
)

// command is one serialized request into the hub's run loop. All table
// mutations for a logical event travel as a single command, so the loop
// applies them atomically.
type command struct {
	kind   commandKind
	client *Client
	room   string

	// join
	authorized bool
	gateErr    error

	// relay
	claimedSender string
	target        string
	signalKind    string
	payload       json.RawMessage

	// snapshot
	reply chan Snapshot
}

// Snapshot is a consistent copy of the hub's tables, taken inside the run
// loop. Used by tests and diagnostics.
type Snapshot struct {
	Conns  map[string]string   // connection id -> user identity
	Users  map[string]string   // user identity -> connection id
	Rooms  map[string][]string // room id -> member identities
	RoomOf map[string]string   // connection id -> room id
}
