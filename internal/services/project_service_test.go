package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		completed, total int64
		want             int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 34},
		{2, 3, 67},
		{1, 200, 1},
		{3, 3, 100},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, progressPercent(tc.completed, tc.total), "%d/%d", tc.completed, tc.total)
	}
}

func TestProgressPercent_Monotonic(t *testing.T) {
	const total = 17
	prev := 0
	for completed := int64(0); completed <= total; completed++ {
		got := progressPercent(completed, total)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestProjectService_CreateUpdateAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	p := env.project(t, owner)

	assert.Equal(t, constants.ProjectInProgress, p.Status)
	assert.NotEmpty(t, p.InviteToken)

	deadline := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	updated, err := env.projects.UpdateProject(ctx, p.ID, ProjectInput{
		Name:        "Renamed",
		Client:      "Globex",
		Description: "Scope changed",
		Deadline:    deadline,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Globex", updated.Client)
	assert.True(t, deadline.Equal(updated.Deadline))
	require.Len(t, updated.Members, 1)
	require.NotNil(t, updated.Members[0].User)
	assert.Equal(t, "olivia", updated.Members[0].User.Username)

	archived, err := env.projects.UpdateStatus(ctx, p.ID, constants.ProjectArchived)
	require.NoError(t, err)
	assert.Equal(t, constants.ProjectArchived, archived.Status)

	_, err = env.projects.UpdateStatus(ctx, p.ID, constants.ProjectStatus("Paused"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = env.projects.UpdateProject(ctx, "missing", ProjectInput{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestProjectService_ListForUserByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	olivia := env.user(t, "olivia")
	bob := env.user(t, "bob")
	mine := env.project(t, olivia)
	theirs := env.project(t, bob)
	env.join(t, theirs.ID, olivia)

	all, err := env.projects.ListForUser(ctx, olivia.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admin, err := env.projects.ListForUser(ctx, olivia.ID, constants.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, mine.ID, admin[0].ID)

	member, err := env.projects.ListForUser(ctx, olivia.ID, constants.RoleMember)
	require.NoError(t, err)
	require.Len(t, member, 1)
	assert.Equal(t, theirs.ID, member[0].ID)

	_, err = env.projects.ListForUser(ctx, olivia.ID, constants.Role("guest"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)
	env.join(t, p.ID, bob)

	task, err := env.tasks.AssignTask(ctx, p.ID, owner.ID, bob.ID, TaskInput{Description: "Draft copy"})
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, p.ID, task.ID, owner.ID, "please start")
	require.NoError(t, err)
	require.Len(t, env.inbox(t, bob.ID), 1)

	require.NoError(t, env.projects.DeleteProject(ctx, p.ID))

	_, err = env.projects.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	_, err = env.taskRepo.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	assert.Empty(t, env.inbox(t, bob.ID))

	projects, err := env.projects.ListForUser(ctx, bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, projects)

	assert.ErrorIs(t, env.projects.DeleteProject(ctx, p.ID), apperrors.ErrProjectNotFound)
}

func TestProjectService_Progress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "olivia")
	bob := env.user(t, "bob")
	p := env.project(t, owner)
	env.join(t, p.ID, bob)

	progress, err := env.projects.Progress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)

	var ids []string
	for _, d := range []string{"one", "two", "three"} {
		task, err := env.tasks.AssignTask(ctx, p.ID, owner.ID, bob.ID, TaskInput{Description: d})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	want := []int{34, 67, 100}
	for i, id := range ids {
		_, err := env.tasks.SubmitTask(ctx, p.ID, id, bob.ID)
		require.NoError(t, err)
		_, err = env.tasks.ApproveTask(ctx, p.ID, id, owner.ID)
		require.NoError(t, err)

		progress, err := env.projects.Progress(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, want[i], progress)
	}

	_, err = env.projects.Progress(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}
