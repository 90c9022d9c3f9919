package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peercall/peercall-server/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *SQLiteStore, id, name string) {
	t.Helper()

	err := s.UpsertUser(context.Background(), &store.User{
		ID:    id,
		Email: name + "@example.com",
		Name:  name,
	})
	require.NoError(t, err)
}

func TestUpsertUserReplacesProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", "alice")

	err := s.UpsertUser(ctx, &store.User{ID: "u1", Email: "alice@example.com", Name: "Alice A.", Avatar: "http://a/1.png"})
	require.NoError(t, err)

	u, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", u.Name)
	assert.Equal(t, "http://a/1.png", u.Avatar)
}

func TestGetUserByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFriendEdgeEitherDirection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", "alice")
	seedUser(t, s, "u2", "bob")
	seedUser(t, s, "u3", "carol")

	_, err := s.AddFriend(ctx, "u1", "u2")
	require.NoError(t, err)

	ok, err := s.HasFriendEdge(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, ok)

	// Reverse direction of the same edge also authorizes.
	ok, err = s.HasFriendEdge(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasFriendEdge(ctx, "u1", "u3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListFriendsFollowsBothDirections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", "alice")
	seedUser(t, s, "u2", "bob")
	seedUser(t, s, "u3", "carol")

	_, err := s.AddFriend(ctx, "u1", "u2")
	require.NoError(t, err)
	_, err = s.AddFriend(ctx, "u3", "u1")
	require.NoError(t, err)

	friends, err := s.ListFriends(ctx, "u1")
	require.NoError(t, err)

	names := make([]string, 0, len(friends))
	for _, f := range friends {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"bob", "carol"}, names)
}

func TestSearchUsersExcludesSelfAndFriends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", "alice")
	seedUser(t, s, "u2", "alex")
	seedUser(t, s, "u3", "alan")
	seedUser(t, s, "u4", "bob")

	_, err := s.AddFriend(ctx, "u1", "u2")
	require.NoError(t, err)

	results, err := s.SearchUsers(ctx, "u1", "al", 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "alan", results[0].Name)
}
