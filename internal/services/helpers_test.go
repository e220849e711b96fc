package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-hub.com/project-hub/internal/auth"
	config "project-hub.com/project-hub/internal/configs"
	repository "project-hub.com/project-hub/internal/repositories"
	"project-hub.com/project-hub/internal/security"
	"project-hub.com/project-hub/internal/sessions"
	model "project-hub.com/project-hub/pkg/models"
)

type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	projectRepo *repository.ProjectRepository
	taskRepo    *repository.TaskRepository

	reminders   *ReminderService
	memberships *MembershipService
	projects    *ProjectService
	tasks       *TaskService
	comments    *CommentService
	userSvc     *UserService
	auth        *AuthService
	mailer      *recordingMailer
	sessions    *sessions.MemoryStore
}

type recordingMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *recordingMailer) SendPasswordReset(ctx context.Context, email, username, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[email] = token
	return nil
}

func (m *recordingMailer) tokenFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[email]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := zerolog.Nop()

	users := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	reminders := NewReminderService(reminderRepo, log)
	memberships := NewMembershipService(projectRepo, memberRepo, users, "http://hub.test/", log)
	mailer := &recordingMailer{tokens: map[string]string{}}
	store := sessions.NewMemoryStore()
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	issuer := auth.NewTokenIssuer(strings.Repeat("k", 32), "project-hub-test", time.Hour)

	return &testEnv{
		db:          db,
		users:       users,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		reminders:   reminders,
		memberships: memberships,
		projects:    NewProjectService(projectRepo, memberRepo, taskRepo, log),
		tasks:       NewTaskService(taskRepo, memberRepo, reminders, log),
		comments:    NewCommentService(commentRepo, taskRepo),
		userSvc:     NewUserService(users, log),
		auth:        NewAuthService(users, hasher, issuer, store, time.Hour, mailer, memberships, 3*time.Hour, log),
		mailer:      mailer,
		sessions:    store,
	}
}

func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()

	u, err := e.auth.Register(context.Background(), RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "password-" + name,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) project(t *testing.T, owner *model.User) *model.Project {
	t.Helper()

	p, err := e.projects.CreateProject(context.Background(), owner.ID, ProjectInput{
		Name:        "Website relaunch",
		Client:      "Acme",
		Description: "New marketing site",
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) join(t *testing.T, projectID string, u *model.User) {
	t.Helper()

	_, err := e.memberships.AddMember(context.Background(), projectID, u.Email)
	require.NoError(t, err)
}

func (e *testEnv) inbox(t *testing.T, userID string) []model.Reminder {
	t.Helper()

	list, err := e.reminders.List(context.Background(), userID)
	require.NoError(t, err)
	return list
}
