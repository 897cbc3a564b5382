package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/stretchr/testify/require"
)

// failingUsers fails every lookup with a storage error.
type failingUsers struct{ store.Users }

var errDisk = errors.New("disk on fire")

func (failingUsers) GetUserByID(context.Context, string) (domain.User, error) {
	return domain.User{}, errDisk
}

func (failingUsers) GetUserByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, errDisk
}

func (failingUsers) GetUserByPhone(context.Context, string) (domain.User, error) {
	return domain.User{}, errDisk
}

type failingStore struct{ store.Store }

func (failingStore) Users() store.Users { return failingUsers{} }

func TestCheckUserExists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerIndividual(t, "0400000001", "hunter22")

	res, err := f.svc.CheckUserExists(ctx, "0400 000 001")
	require.NoError(t, err)
	require.True(t, res.Exists)

	res, err = f.svc.CheckUserExists(ctx, "0499999999")
	require.NoError(t, err)
	require.False(t, res.Exists)
}

func TestCheckUserByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.registerCorporate(t, "ops@acme.example", "hunter22")

	res, err := f.svc.CheckUserByEmail(ctx, "OPS@acme.example")
	require.NoError(t, err)
	require.True(t, res.Exists)
	require.Equal(t, &service.UserSummary{
		ID:       u.ID,
		Name:     "Acme",
		Email:    "ops@acme.example",
		UserType: domain.UserTypeCorporate,
	}, res.User)

	res, err = f.svc.CheckUserByEmail(ctx, "nobody@acme.example")
	require.NoError(t, err)
	require.False(t, res.Exists)
	require.Nil(t, res.User)
}

func TestLookupsSurfaceStoreFailures(t *testing.T) {
	ctx := context.Background()
	svc := &service.AuthService{Store: failingStore{}}

	_, err := svc.CheckUserExists(ctx, "0400000001")
	requireKind(t, err, service.ErrInternal)
	require.ErrorIs(t, err, errDisk)

	_, err = svc.CheckUserByEmail(ctx, "a@b.example")
	requireKind(t, err, service.ErrInternal)

	_, err = svc.GetPrincipal(ctx, "u1")
	requireKind(t, err, service.ErrInternal)
}

func TestGetPrincipal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.registerIndividual(t, "0400000001", "hunter22")

	p, err := f.svc.GetPrincipal(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, p.ID)
	require.Equal(t, domain.RoleCustomer, p.Role)

	_, err = f.svc.GetPrincipal(ctx, "missing")
	requireKind(t, err, service.ErrNotFound)
}
