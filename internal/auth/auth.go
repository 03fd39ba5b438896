// Package auth carries the authenticated identity through request
// contexts. A bare caller-supplied id is never trusted directly: it is
// resolved into an Identity by a Verifier before any service sees it.
package auth

import (
	"context"

	"stagepass/internal/errors"
	"stagepass/internal/models"

	"github.com/google/uuid"
)

// Identity is the verified caller identity attached to a request context.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type ctxKey struct{}

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(Identity)
	return identity, ok
}

// Verifier turns a caller-supplied identity token into a verified Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// UserGetter is the slice of the user store the verifier needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DirectoryVerifier resolves the token as a user id against the user
// directory. It validates shape before touching storage.
type DirectoryVerifier struct {
	users UserGetter
}

func NewDirectoryVerifier(users UserGetter) *DirectoryVerifier {
	return &DirectoryVerifier{users: users}
}

func (v *DirectoryVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, errors.ErrIdentityRequired
	}
	if _, err := uuid.Parse(token); err != nil {
		return Identity{}, errors.ErrIdentityRequired
	}

	user, err := v.users.GetByID(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	if user == nil {
		return Identity{}, errors.ErrUserNotFound
	}

	return Identity{UserID: user.ID, Role: user.Role}, nil
}
