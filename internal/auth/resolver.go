package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peercall/peercall-server/internal/store"
)

// ErrInvalidCredential is returned when a connection's bearer token cannot
// be verified. The transport rejects the connection outright.
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is the authenticated person behind a connection, with the
// display fields cached for presence broadcasts.
type Identity struct {
	UserID string
	Name   string
	Avatar string
}

// Resolver verifies bearer tokens and resolves them to user identities.
// Profile lookups hit the external user store and are bounded by Timeout
// so a slow collaborator rejects the connect instead of stalling it.
type Resolver struct {
	jwtConfig *JWTConfig
	users     store.UserStore
	timeout   time.Duration
}

// NewResolver creates an identity resolver.
func NewResolver(jwtConfig *JWTConfig, users store.UserStore, timeout time.Duration) *Resolver {
	return &Resolver{
		jwtConfig: jwtConfig,
		users:     users,
		timeout:   timeout,
	}
}

// Resolve verifies the credential and returns the authenticated identity.
// A verifiable token whose profile is missing still authenticates; the
// display name falls back to the identity itself.
func (r *Resolver) Resolve(ctx context.Context, credential string) (*Identity, error) {
	claims, err := ValidateToken(r.jwtConfig, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	identity := &Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
	}

	if r.users != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		user, lookupErr := r.users.GetUserByID(lookupCtx, claims.Subject)
		if lookupErr == nil {
			identity.Name = user.Name
			identity.Avatar = user.Avatar
		}
	}

	if identity.Name == "" {
		identity.Name = identity.UserID
	}

	return identity, nil
}
