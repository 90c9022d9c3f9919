package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/peercall/peercall-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	avatar     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS friends (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL REFERENCES users(id),
	friend_id  TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_friends_user ON friends(user_id);
CREATE INDEX IF NOT EXISTS idx_friends_friend ON friends(friend_id);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens a SQLite store at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// UpsertUser inserts or replaces a user profile record.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *store.User) error {
	query := `
		INSERT INTO users (id, email, name, avatar)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, name = excluded.name, avatar = excluded.avatar
	`
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.Avatar); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by provider ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*store.User, error) {
	query := `
		SELECT id, email, name, avatar, created_at
		FROM users
		WHERE id = ?
	`
	var u store.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// SearchUsers searches users by name substring, excluding the requesting
// user and anyone already connected to them by a friend edge.
func (s *SQLiteStore) SearchUsers(ctx context.Context, selfID, query string, limit int) ([]*store.User, error) {
	if limit <= 0 {
		limit = 10
	}
	q := `
		SELECT id, email, name, avatar, created_at
		FROM users
		WHERE id != ?
		  AND name LIKE ?
		  AND id NOT IN (
			SELECT friend_id FROM friends WHERE user_id = ?
			UNION
			SELECT user_id FROM friends WHERE friend_id = ?
		  )
		ORDER BY name
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, q, selfID, "%"+query+"%", selfID, selfID, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ==== FriendStore implementation ====

// AddFriend creates an edge between two users.
func (s *SQLiteStore) AddFriend(ctx context.Context, userID, friendID string) (*store.Friend, error) {
	query := `
		INSERT INTO friends (user_id, friend_id)
		VALUES (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("insert friend: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return &store.Friend{ID: id, UserID: userID, FriendID: friendID}, nil
}

// HasFriendEdge reports whether an edge exists in either direction.
func (s *SQLiteStore) HasFriendEdge(ctx context.Context, userID, friendID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM friends
		WHERE (user_id = ? AND friend_id = ?)
		   OR (user_id = ? AND friend_id = ?)
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, friendID, friendID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("query friend edge: %w", err)
	}
	return count > 0, nil
}

// ListFriends returns the profiles of all users connected to userID by an
// edge in either direction.
func (s *SQLiteStore) ListFriends(ctx context.Context, userID string) ([]*store.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.avatar, u.created_at
		FROM users u
		JOIN friends f
		  ON (f.user_id = u.id AND f.friend_id = ?)
		  OR (f.friend_id = u.id AND f.user_id = ?)
		ORDER BY u.name
	`
	rows, err := s.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]*store.User, error) {
	users := make([]*store.User, 0)
	for rows.Next() {
		var u store.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
