package auth

import (
	"context"
	"testing"

	"stagepass/internal/errors"
	"stagepass/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	users map[string]*models.User
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func TestDirectoryVerifier(t *testing.T) {
	adminID := uuid.New().String()
	v := NewDirectoryVerifier(&stubUsers{users: map[string]*models.User{
		adminID: {ID: adminID, Role: models.RoleAdmin},
	}})
	ctx := context.Background()

	identity, err := v.Verify(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, adminID, identity.UserID)
	assert.True(t, identity.IsAdmin())

	_, err = v.Verify(ctx, "")
	assert.ErrorIs(t, err, errors.ErrIdentityRequired)

	_, err = v.Verify(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, errors.ErrIdentityRequired)

	_, err = v.Verify(ctx, uuid.New().String())
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)

	want := Identity{UserID: uuid.New().String(), Role: models.RoleUser}
	got, ok := IdentityFromContext(ContextWithIdentity(ctx, want))
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.False(t, got.IsAdmin())
}
