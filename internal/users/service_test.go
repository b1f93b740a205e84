package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/security"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupUsersTestDB(t))
	return NewService(repo, config.PasswordConfig{}), repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 42)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpdatePartialMerge(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ana", "ana@x.com")

	dto, err := svc.Update(ctx, user.ID, UpdateUserRequest{
		FirstName:  strPtr("Anita"),
		Department: strPtr("finance"),
		IsStaff:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anita", dto.FirstName)
	assert.Equal(t, "Anita Reyes", dto.FullName)
	require.NotNil(t, dto.Department)
	assert.Equal(t, "finance", *dto.Department)
	assert.True(t, dto.IsStaff)
	// untouched fields survive the merge
	assert.Equal(t, "ana", dto.Username)
	assert.Equal(t, "ana@x.com", dto.Email)
}

func TestServiceUpdateRehashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ana", "ana@x.com")
	oldHash := user.PasswordHash

	_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Password: strPtr("brandnewpass")})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "brandnewpass")

	ok, err := security.VerifyPassword("brandnewpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceUpdateUsernameConflict(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	seedUser(t, repo, "ana", "ana@x.com")
	ben := seedUser(t, repo, "ben", "ben@x.com")

	_, err := svc.Update(ctx, ben.ID, UpdateUserRequest{Username: strPtr("ana")})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Username already exists.", typed.Details()["username"])
}

func TestServiceUpdateRejectsBlankUsername(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ana", "ana@x.com")

	_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Username: strPtr("   ")})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "This field may not be blank.", typed.Details()["username"])

	_, err = svc.Update(ctx, user.ID, UpdateUserRequest{Email: strPtr(" \t ")})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "This field may not be blank.", typed.Details()["email"])

	// the row is untouched
	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", stored.Username)
	assert.Equal(t, "ana@x.com", stored.Email)
}

func TestServiceUpdateSameUsernameNoConflict(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ana", "ana@x.com")

	dto, err := svc.Update(ctx, user.ID, UpdateUserRequest{Username: strPtr("ana")})
	require.NoError(t, err)
	assert.Equal(t, "ana", dto.Username)
}

func TestServiceDelete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "ana", "ana@x.com")

	require.NoError(t, svc.Delete(ctx, user.ID))

	err := svc.Delete(ctx, user.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDTOOmitsPassword(t *testing.T) {
	_, repo := newTestService(t)
	user := seedUser(t, repo, "ana", "ana@x.com")

	dto := FromModel(user)
	assert.NotNil(t, dto.DateJoined)
	assert.Nil(t, dto.LastLogin)
	assert.Equal(t, "Ana Reyes", dto.FullName)
}
