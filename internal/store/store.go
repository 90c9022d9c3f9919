package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User is a profile record owned by the external identity provider.
// IDs are the provider's stable subject strings, not local integers.
type User struct {
	ID        string
	Email     string
	Name      string
	Avatar    string
	CreatedAt time.Time
}

// Friend is an unordered relationship edge between two users. An edge in
// either direction authorizes cross-room joining.
type Friend struct {
	ID        int64
	UserID    string
	FriendID  string
	CreatedAt time.Time
}

// UserStore handles user profile persistence.
type UserStore interface {
	// UpsertUser inserts or replaces a user profile record.
	UpsertUser(ctx context.Context, user *User) error

	// GetUserByID retrieves a user by provider ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// SearchUsers searches users by name substring, excluding the given
	// user and their existing friends.
	SearchUsers(ctx context.Context, selfID, query string, limit int) ([]*User, error)
}

// FriendStore handles friend-edge persistence.
type FriendStore interface {
	// AddFriend creates an edge between two users.
	AddFriend(ctx context.Context, userID, friendID string) (*Friend, error)

	// HasFriendEdge reports whether an edge exists in either direction.
	HasFriendEdge(ctx context.Context, userID, friendID string) (bool, error)

	// ListFriends returns the profiles of all users connected to userID
	// by an edge in either direction.
	ListFriends(ctx context.Context, userID string) ([]*User, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	FriendStore

	// Close closes the underlying database connection.
	Close() error
}
