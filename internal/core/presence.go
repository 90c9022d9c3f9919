package core

import "github.com/rs/zerolog"

// Presence emits join/leave/roster notifications to the subset of
// connections that should see them. Delivery is at-most-once: members whose
// connection is gone, or whose queue is full, are silently skipped.
type Presence struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewPresence creates a broadcaster over the given registry.
func NewPresence(registry *Registry, logger *zerolog.Logger) *Presence {
	return &Presence{registry: registry, log: logger}
}

// BroadcastJoin announces a join. Every member other than the joiner gets
// a user-connect notification; the joiner gets a roster snapshot of the
// whole member set, itself included. When the joiner enters someone else's
// room, the other members additionally get an enter-call notification so
// they start negotiating with the new peer.
func (p *Presence) BroadcastJoin(roomID string, joiner *Client, members []string) {
	for _, userID := range members {
		if userID == joiner.UserID {
			continue
		}
		peer, err := p.registry.ResolveUser(userID)
		if err != nil {
			// Stale member, tolerated until cleanup.
			continue
		}
		peer.send(&Event{
			Kind: EventUserConnect,
			Room: roomID,
			User: joiner.UserID,
			Name: joiner.Name,
		})
		if roomID != joiner.UserID {
			peer.send(&Event{
				Kind:   EventEnterCall,
				Room:   roomID,
				User:   joiner.UserID,
				Name:   joiner.Name,
				ConnID: joiner.ConnID,
			})
		}
	}

	p.SendRoster(roomID, joiner, members)

	p.log.Debug().
		Str("room_id", roomID).
		Str("user_id", joiner.UserID).
		Int("members", len(members)).
		Msg("user joined room")
}

// SendRoster delivers a full member snapshot to one client. Used on join
// and on a redundant re-join, where peers get no second notification but
// the joiner still deserves a fresh roster.
func (p *Presence) SendRoster(roomID string, to *Client, members []string) {
	to.send(&Event{
		Kind:   EventUserList,
		Room:   roomID,
		Roster: p.roster(members),
	})
}

// BroadcastLeave announces a leave to every remaining member.
func (p *Presence) BroadcastLeave(roomID string, leaverUserID, leaverConnID string, remaining []string) {
	for _, userID := range remaining {
		peer, err := p.registry.ResolveUser(userID)
		if err != nil {
			continue
		}
		peer.send(&Event{
			Kind:   EventUserDisconnect,
			Room:   roomID,
			User:   leaverUserID,
			ConnID: leaverConnID,
		})
	}

	p.log.Debug().
		Str("room_id", roomID).
		Str("user_id", leaverUserID).
		Int("remaining", len(remaining)).
		Msg("user left room")
}

// roster maps member identities to display names, read from the live
// connections. Members without one keep their identity as the name.
func (p *Presence) roster(members []string) map[string]string {
	list := make(map[string]string, len(members))
	for _, userID := range members {
		name := userID
		if peer, err := p.registry.ResolveUser(userID); err == nil {
			name = peer.Name
		}
		list[userID] = name
	}
	return list
}
