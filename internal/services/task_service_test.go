package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from    constants.TaskStatus
		action  TaskAction
		want    constants.TaskStatus
		wantErr bool
	}{
		{constants.StatusTodo, ActionSubmit, constants.StatusAwaitingReview, false},
		{constants.StatusAwaitingReview, ActionApprove, constants.StatusCompleted, false},
		{constants.StatusAwaitingReview, ActionReject, constants.StatusTodo, false},
		{constants.StatusTodo, ActionApprove, "", true},
		{constants.StatusTodo, ActionReject, "", true},
		{constants.StatusAwaitingReview, ActionSubmit, "", true},
		{constants.StatusCompleted, ActionSubmit, "", true},
		{constants.StatusCompleted, ActionReject, "", true},
		{constants.StatusTodo, TaskAction("archive"), "", true},
	}

	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.action)
		if tc.wantErr {
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s from %s", tc.action, tc.from)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestTaskService_ReviewCycleSendsReminders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	p := env.project(t, admin)
	env.join(t, p.ID, member)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{
		Description: "Write the onboarding guide for new contributors",
		Urgent:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusTodo, task.Status)
	require.NotNil(t, task.Member)
	assert.Equal(t, "mike", task.Member.Username)

	inbox := env.inbox(t, member.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "New task assigned: Write the onboarding guide for...", inbox[0].Message)

	submitted, err := env.tasks.SubmitTask(ctx, p.ID, task.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusAwaitingReview, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	adminInbox := env.inbox(t, admin.ID)
	require.Len(t, adminInbox, 1)
	assert.True(t, strings.HasPrefix(adminInbox[0].Message, "Task awaiting review: "))
	assert.Equal(t, member.ID, adminInbox[0].SenderID)
	require.NotNil(t, adminInbox[0].Project)
	assert.Equal(t, p.Name, adminInbox[0].Project.Name)

	queue, err := env.tasks.SubmittedTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)

	approved, err := env.tasks.ApproveTask(ctx, p.ID, task.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCompleted, approved.Status)
	assert.NotNil(t, approved.CompletedAt)

	inbox = env.inbox(t, member.ID)
	require.Len(t, inbox, 2)
	assert.True(t, strings.HasPrefix(inbox[0].Message, "Task approved: "))

	progress, err := env.projects.Progress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress)

	_, err = env.tasks.ApproveTask(ctx, p.ID, task.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	_, err = env.tasks.SubmitTask(ctx, p.ID, task.ID, member.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTaskService_RejectReturnsToTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	p := env.project(t, admin)
	env.join(t, p.ID, member)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{Description: "Fix login"})
	require.NoError(t, err)

	_, err = env.tasks.RejectTask(ctx, p.ID, task.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = env.tasks.SubmitTask(ctx, p.ID, task.ID, member.ID)
	require.NoError(t, err)

	rejected, err := env.tasks.RejectTask(ctx, p.ID, task.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusTodo, rejected.Status)
	assert.Nil(t, rejected.SubmittedAt)

	inbox := env.inbox(t, member.ID)
	require.Len(t, inbox, 2)
	assert.Equal(t, "Task returned for changes: Fix login", inbox[0].Message)

	_, err = env.tasks.SubmitTask(ctx, p.ID, task.ID, member.ID)
	assert.NoError(t, err)
}

func TestTaskService_OnlyAssigneeSubmits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	other := env.user(t, "nina")
	p := env.project(t, admin)
	env.join(t, p.ID, member)
	env.join(t, p.ID, other)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{Description: "Logo"})
	require.NoError(t, err)

	_, err = env.tasks.SubmitTask(ctx, p.ID, task.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAssignee)
}

func TestTaskService_AssignRequiresMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	outsider := env.user(t, "eve")
	p := env.project(t, admin)

	_, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, outsider.ID, TaskInput{Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	_, err = env.tasks.AssignTask(ctx, p.ID, admin.ID, admin.ID, TaskInput{Description: "   "})
	assert.Equal(t, 400, apperrors.StatusCode(err))

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, admin.ID, TaskInput{Description: "self"})
	require.NoError(t, err)
	assert.Empty(t, env.inbox(t, admin.ID), "no reminder to yourself")
	assert.Equal(t, admin.ID, task.AssignedByID)
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	p := env.project(t, admin)
	other := env.project(t, admin)
	env.join(t, p.ID, member)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{Description: "Old"})
	require.NoError(t, err)

	deadline := time.Now().Add(48 * time.Hour)
	updated, err := env.tasks.UpdateTask(ctx, p.ID, task.ID, TaskInput{Description: "New", Deadline: &deadline, Urgent: true})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Description)
	assert.True(t, updated.Urgent)
	require.NotNil(t, updated.Deadline)
	assert.WithinDuration(t, deadline, *updated.Deadline, time.Second)
	assert.Equal(t, constants.StatusTodo, updated.Status)
	assert.Equal(t, uint(2), updated.Version)

	_, err = env.tasks.GetTask(ctx, other.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = env.comments.CreateComment(ctx, p.ID, task.ID, member.ID, "on it")
	require.NoError(t, err)

	require.NoError(t, env.tasks.DeleteTask(ctx, p.ID, task.ID))
	_, err = env.tasks.GetTask(ctx, p.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	var left int64
	require.NoError(t, env.db.Table("comments").Where("task_id = ?", task.ID).Count(&left).Error)
	assert.Zero(t, left)
}

func TestTaskService_TasksSurviveMemberRemoval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	p := env.project(t, admin)
	env.join(t, p.ID, member)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{Description: "Orphan me"})
	require.NoError(t, err)

	_, err = env.memberships.RemoveMember(ctx, p.ID, admin.ID, member.ID)
	require.NoError(t, err)

	perMember, err := env.tasks.TasksPerMember(ctx, p.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, perMember, 1)
	assert.Equal(t, task.ID, perMember[0].ID)

	all, err := env.tasks.ListProjectTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := env.tasks.TasksForUser(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestTaskService_ConcurrentApproveRejectSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "olivia")
	member := env.user(t, "mike")
	p := env.project(t, admin)
	env.join(t, p.ID, member)

	task, err := env.tasks.AssignTask(ctx, p.ID, admin.ID, member.ID, TaskInput{Description: "Race"})
	require.NoError(t, err)
	_, err = env.tasks.SubmitTask(ctx, p.ID, task.ID, member.ID)
	require.NoError(t, err)

	errs := make(chan error, 2)
	go func() {
		_, err := env.tasks.ApproveTask(ctx, p.ID, task.ID, admin.ID)
		errs <- err
	}()
	go func() {
		_, err := env.tasks.RejectTask(ctx, p.ID, task.ID, admin.ID)
		errs <- err
	}()

	failures := 0
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}
