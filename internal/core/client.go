package core

// Client is one live transport connection as seen by the core layer.
// The identity fields are set once at connect and never change for the
// connection's lifetime.
type Client struct {
	ConnID string
	UserID string
	Name   string
	Avatar string

	// Events is drained by the connection's writer goroutine, which keeps
	// delivery strictly ordered per connection.
	Events chan *Event
}

// NewClient constructs a client for an authenticated connection.
func NewClient(connID, userID, name string, buffer int) *Client {
	if name == "" {
		name = userID
	}
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ConnID: connID,
		UserID: userID,
		Name:   name,
		Events: make(chan *Event, buffer),
	}
}

// send enqueues an event for delivery, dropping it if the connection's
// queue is full. Presence is best-effort; stale notifications have no value.
func (c *Client) send(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
