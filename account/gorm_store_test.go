package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biduedson/reservas-api/account"
	"github.com/biduedson/reservas-api/account/migrations"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/database/migration"
	"github.com/biduedson/reservas-api/database/testutil"
)

func newGormStore(t *testing.T) *account.GormStore {
	t.Helper()
	return account.NewGormStore(testutil.NewSQLite(t, &account.Account{}))
}

func sample(email string) *account.Account {
	return &account.Account{
		Name:           "Maria",
		Email:          email,
		PasswordDigest: "digest",
		Algorithm:      password.AlgorithmSaltedSHA512,
		Active:         true,
	}
}

func TestGormStore_CreateAndFind(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	a := sample("maria@example.com")
	require.NoError(t, store.Create(ctx, a))
	assert.NotEqual(t, uuid.Nil, a.ID)

	byEmail, err := store.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
	assert.True(t, byEmail.Active)
	assert.False(t, byEmail.Admin)
	assert.Equal(t, password.AlgorithmSaltedSHA512, byEmail.Algorithm)

	byID, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", byID.Email)

	exists, err := store.ExistsByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormStore_NotFound(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	_, err := store.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, account.ErrNotFound)

	_, err = store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, account.ErrNotFound)

	exists, err := store.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormStore_DuplicateEmail(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sample("maria@example.com")))
	err := store.Create(ctx, sample("maria@example.com"))
	assert.ErrorIs(t, err, account.ErrEmailTaken)
}

func TestGormStore_InactiveRoundTrip(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	a := sample("off@example.com")
	a.Active = false
	require.NoError(t, store.Create(ctx, a))

	got, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestGormStore_List(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, store.Create(ctx, sample(email)))
	}

	all, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := store.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestMigrations_Embedded(t *testing.T) {
	versions, err := migration.Versions(migrations.FS, migrations.Path)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, versions)
}
