package core

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Signaling payload kinds the relay recognizes for diagnostics. Candidate
// messages are too chatty to log.
const (
	SignalKindOffer     = "offer"
	SignalKindAnswer    = "answer"
	SignalKindCandidate = "new-ice-candidate"
)

// Relay forwards opaque signaling payloads to a specifically addressed
// user, independent of room membership. It never interprets the payload
// beyond reading the kind tag for logging.
type Relay struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewRelay creates a signaling relay over the given registry.
func NewRelay(registry *Registry, logger *zerolog.Logger) *Relay {
	return &Relay{registry: registry, log: logger}
}

// Forward delivers payload verbatim to targetUserID's current connection.
// An offline target drops the message silently; the sender cannot assume
// synchronous acknowledgment in a fire-and-forget negotiation protocol.
func (r *Relay) Forward(senderUserID, targetUserID, kind string, payload json.RawMessage) {
	target, err := r.registry.ResolveUser(targetUserID)
	if err != nil {
		r.log.Debug().
			Str("sender_id", senderUserID).
			Str("target_id", targetUserID).
			Msg("relay target offline, dropping")
		return
	}

	if kind != SignalKindCandidate {
		r.log.Debug().
			Str("kind", kind).
			Str("sender_id", senderUserID).
			Str("target_id", targetUserID).
			Msg("relaying signaling message")
	}

	target.send(&Event{
		Kind:    EventData,
		User:    senderUserID,
		Payload: payload,
	})
}
