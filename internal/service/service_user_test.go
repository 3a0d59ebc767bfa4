// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/mock"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	aliceID = "0195f3a2-1111-7000-8000-000000000001"
	bobID   = "0195f3a2-2222-7000-8000-000000000002"
)

var (
	alice = models.Principal{Username: "alice", ID: aliceID, Role: models.RoleUser}
	bob   = models.Principal{Username: "bob", ID: bobID, Role: models.RoleUser}
	admin = models.Principal{Username: "root", ID: "0195f3a2-9999-7000-8000-000000000009", Role: models.RoleAdmin}
)

func newTestUserService(ctrl *gomock.Controller) (UserService, *mock.MockUserRepository, *mock.MockPasswordHasher) {
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	return NewUserService(repo, hasher, validators.NewRequestValidator(), logger.Nop()), repo, hasher
}

func TestGetInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()
	want := models.User{ID: aliceID, Username: "alice", Tags: []string{}}

	repo.EXPECT().FindUserByID(ctx, aliceID).Return(want, nil)

	got, err := svc.GetInfo(ctx, alice)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetInfo_DeletedUserIsAuthenticationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.GetInfo(ctx, alice)

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().UpdateProfile(ctx, aliceID, "Al", "L").
		Return(models.User{ID: aliceID, FirstName: "Al", LastName: "L"}, nil)

	user, err := svc.UpdateProfile(ctx, alice, models.UpdateProfileRequest{FirstName: "Al", LastName: "L"})

	require.NoError(t, err)
	assert.Equal(t, "Al", user.FirstName)
}

func TestUpdateProfile_MissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)

	_, err := svc.UpdateProfile(context.Background(), alice, models.UpdateProfileRequest{FirstName: "Al"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestUserService(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{ID: aliceID, PasswordHash: "old-hash"}, nil),
		hasher.EXPECT().Verify("Secret123", "old-hash").Return(true),
		hasher.EXPECT().Hash("Newer4567").Return("new-hash", nil),
		repo.EXPECT().UpdatePasswordHash(ctx, aliceID, "new-hash").Return(nil),
	)

	err := svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{Password: "Secret123", NewPassword: "Newer4567"})

	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{ID: aliceID, PasswordHash: "old-hash"}, nil)
	hasher.EXPECT().Verify("Wrong1234", "old-hash").Return(false)

	err := svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{Password: "Wrong1234", NewPassword: "Newer4567"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePassword_UnchangedRejectedBeforeLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)

	err := svc.ChangePassword(context.Background(), alice,
		models.ChangePasswordRequest{Password: "Secret123", NewPassword: "Secret123"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrPasswordUnchanged)
}

func TestAddTags_Deduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().AddTags(ctx, aliceID, []string{"go", "db"}).Return(nil)

	assert.NoError(t, svc.AddTags(ctx, alice, []string{"go", "db", "go"}))
}

func TestAddTags_EmptyTagRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)

	err := svc.AddTags(context.Background(), alice, []string{"go", ""})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddTags_EmptyListOnlyChecksUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{ID: aliceID}, nil)

	assert.NoError(t, svc.AddTags(ctx, alice, nil))
}

func TestRemoveTags_DeletedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().RemoveTags(ctx, aliceID, []string{"go"}).Return(store.ErrUserNotFound)

	err := svc.RemoveTags(ctx, alice, []string{"go"})

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListUsers(ctx).Return([]models.User{{ID: aliceID}, {ID: bobID}}, nil)

	users, err := svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.ListUsers(ctx, alice)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{ID: aliceID}, nil),
		repo.EXPECT().DeleteUser(ctx, aliceID).Return(nil),
	)

	assert.NoError(t, svc.DeleteUser(ctx, admin, aliceID))
}

func TestDeleteUser_NotFoundBeforeRoleCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, bobID).Return(models.User{}, store.ErrUserNotFound)

	err := svc.DeleteUser(ctx, alice, bobID)

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteUser_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)

	err := svc.DeleteUser(context.Background(), admin, "123")

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteUser_NonAdminDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestUserService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, aliceID).Return(models.User{ID: aliceID}, nil)

	err := svc.DeleteUser(ctx, bob, aliceID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}
