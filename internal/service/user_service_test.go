package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rental-service/internal/service"
)

func TestUserCreate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	user, err := fx.users.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserCreateValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		email string
		code  string
	}{
		{name: "missing email", email: "", code: "VALIDATION_FAILED"},
		{name: "no at sign", email: "alice.example.com", code: "VALIDATION_FAILED"},
		{name: "spaces", email: "alice smith@example.com", code: "VALIDATION_FAILED"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.users.Create(ctx, "Alice", tc.email)
			requireDomainError(t, err, tc.code)
		})
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.users.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = fx.users.Create(ctx, "Imposter", "alice@example.com")
	requireDomainError(t, err, "CONFLICT")
}

func TestUserGetMissing(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.users.Get(context.Background(), 404)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestUserUpdatePartial(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Alice", "alice@example.com")

	updated, err := fx.users.Update(ctx, user.ID, service.UserUpdateInput{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUserUpdateOwnEmailIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Alice", "alice@example.com")

	updated, err := fx.users.Update(ctx, user.ID, service.UserUpdateInput{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "Alice", "alice@example.com")
	bob := fx.seedUser(t, "Bob", "bob@example.com")

	_, err := fx.users.Update(ctx, bob.ID, service.UserUpdateInput{Email: "alice@example.com"})
	requireDomainError(t, err, "CONFLICT")
}

func TestUserDelete(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Alice", "alice@example.com")

	require.NoError(t, fx.users.Delete(ctx, user.ID))

	_, err := fx.users.Get(ctx, user.ID)
	requireDomainError(t, err, "NOT_FOUND")

	err = fx.users.Delete(ctx, user.ID)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestUserList(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.seedUser(t, "Alice", "alice@example.com")
	fx.seedUser(t, "Bob", "bob@example.com")

	users, err := fx.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}
