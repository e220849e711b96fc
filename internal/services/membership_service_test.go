package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
)

func TestMembershipService_CreatorIsOwnerAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	p := env.project(t, owner)

	require.Len(t, p.Members, 1)
	assert.Equal(t, owner.ID, p.Members[0].UserID)
	assert.True(t, p.Members[0].Owner)
	assert.Equal(t, constants.RoleAdmin, p.Members[0].Role)

	for _, check := range []func(context.Context, string, string) (bool, error){
		env.memberships.IsMember, env.memberships.IsAdmin, env.memberships.IsOwner,
	} {
		ok, err := check(ctx, p.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestMembershipService_AddMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)

	member, err := env.memberships.AddMember(ctx, p.ID, "  BOB@example.com ")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleMember, member.Role)
	assert.False(t, member.Owner)

	_, err = env.memberships.AddMember(ctx, p.ID, bob.Email)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	_, err = env.memberships.AddMember(ctx, p.ID, "ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = env.memberships.AddMember(ctx, "missing", bob.Email)
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	isAdmin, err := env.memberships.IsAdmin(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestMembershipService_ConcurrentAddsKeepOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)

	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.memberships.AddMember(ctx, p.ID, bob.Email); err == nil {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	members, err := env.projects.MembersByRole(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestMembershipService_Authorize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	eve := env.user(t, "eve")
	p := env.project(t, owner)
	env.join(t, p.ID, bob)

	_, err := env.memberships.Authorize(ctx, p.ID, bob.ID, constants.AccessMember)
	assert.NoError(t, err)

	_, err = env.memberships.Authorize(ctx, p.ID, bob.ID, constants.AccessAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.memberships.Authorize(ctx, p.ID, eve.ID, constants.AccessMember)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.memberships.Authorize(ctx, "missing", owner.ID, constants.AccessMember)
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	_, err = env.memberships.Authorize(ctx, p.ID, owner.ID, constants.AccessOwner)
	assert.NoError(t, err)
}

func TestMembershipService_PromoteAndRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, owner)
	env.join(t, p.ID, alice)
	env.join(t, p.ID, bob)

	promoted, err := env.memberships.PromoteToAdmin(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, promoted.Role)

	_, err = env.memberships.PromoteToAdmin(ctx, p.ID, alice.ID)
	assert.NoError(t, err)

	admins, err := env.projects.MembersByRole(ctx, p.ID, constants.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	_, err = env.memberships.RemoveMember(ctx, p.ID, alice.ID, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrOwnerImmutable)

	remaining, err := env.memberships.RemoveMember(ctx, p.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	_, err = env.memberships.RemoveMember(ctx, p.ID, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	ok, err := env.memberships.IsMember(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMembershipService_OnlyOwnerRemovesAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	p := env.project(t, owner)
	env.join(t, p.ID, alice)
	env.join(t, p.ID, carol)
	_, err := env.memberships.PromoteToAdmin(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.memberships.PromoteToAdmin(ctx, p.ID, carol.ID)
	require.NoError(t, err)

	_, err = env.memberships.RemoveMember(ctx, p.ID, alice.ID, carol.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.memberships.RemoveMember(ctx, p.ID, owner.ID, carol.ID)
	assert.NoError(t, err)
}

func TestMembershipService_SingleOwnerEnforcedByIndex(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)
	env.join(t, p.ID, bob)

	err := env.db.Exec("UPDATE members SET owner = 1 WHERE project_id = ? AND user_id = ?", p.ID, bob.ID).Error
	assert.Error(t, err)
}

func TestMembershipService_Invites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)

	link, err := env.memberships.InviteLink(ctx, p.ID)
	require.NoError(t, err)
	prefix := "http://hub.test/projects/" + p.ID + "/invite/"
	require.True(t, strings.HasPrefix(link, prefix), link)
	token := strings.TrimPrefix(link, prefix)

	_, err = env.memberships.AcceptInvite(ctx, token, bob.ID)
	require.NoError(t, err)

	_, err = env.memberships.AcceptInvite(ctx, token, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	rotated, err := env.memberships.RegenerateInvite(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, link, rotated)

	carol := env.user(t, "carol")
	_, err = env.memberships.AcceptInvite(ctx, token, carol.ID)
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)

	_, err = env.memberships.AcceptInvite(ctx, strings.TrimPrefix(rotated, prefix), carol.ID)
	assert.NoError(t, err)
}

func TestMembershipService_JoinProjectChecksProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)
	other := env.project(t, owner)

	_, err := env.memberships.JoinProject(ctx, other.ID, p.InviteToken, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)

	member, err := env.memberships.JoinProject(ctx, p.ID, p.InviteToken, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, member.ProjectID)
}
