package core

// Registry is the bidirectional mapping between live connections and
// authenticated user identities. It is not safe for concurrent use: the
// Hub's run loop is its only writer and reader.
type Registry struct {
	conns map[string]*Client // connection id -> client
	users map[string]string  // user identity -> connection id
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*Client),
		users: make(map[string]string),
	}
}

// Register records both directions for a connection. Registering a
// connection id twice returns ErrDuplicateConn; registering a user who
// already has another connection overwrites the user direction
// (last-writer-wins, single session per user).
func (r *Registry) Register(c *Client) error {
	if _, exists := r.conns[c.ConnID]; exists {
		return ErrDuplicateConn
	}
	r.conns[c.ConnID] = c
	r.users[c.UserID] = c.ConnID
	return nil
}

// Resolve returns the client registered under a connection id.
func (r *Registry) Resolve(connID string) (*Client, error) {
	c, ok := r.conns[connID]
	if !ok {
		return nil, ErrUnknownConn
	}
	return c, nil
}

// ResolveUser returns the user's current connection, if any.
func (r *Registry) ResolveUser(userID string) (*Client, error) {
	connID, ok := r.users[userID]
	if !ok {
		return nil, ErrUserOffline
	}
	c, ok := r.conns[connID]
	if !ok {
		return nil, ErrUserOffline
	}
	return c, nil
}

// Unregister removes both directions for a connection. It is a no-op if
// the connection is already absent. The user direction is only cleared if
// it still points at this connection, so a reconnect that already took
// over the slot is left intact.
func (r *Registry) Unregister(connID string) {
	c, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)
	if current, ok := r.users[c.UserID]; ok && current == connID {
		delete(r.users, c.UserID)
	}
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}
