package postgres_test

import (
	"context"
	"fmt"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
	"taskPlanner/internal/repository"
	"taskPlanner/internal/repository/task/postgres"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite runs the storage against a throwaway PostgreSQL container.
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	ctx        context.Context
	connString string
	owner      *user.User
	stranger   *user.User
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.storage, err = postgres.New(s.ctx, s.connString, postgres.PoolConfig{MaxConns: 4})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.storage.Migrate())
	// a second run must be a no-op
	require.NoError(s.T(), s.storage.Migrate())

	s.owner = &user.User{Email: "sam.green@test.com", FirstName: "Sam", LastName: "Green"}
	require.NoError(s.T(), s.storage.SaveUser(s.ctx, s.owner))
	s.stranger = &user.User{Email: "alan.white@test.com", FirstName: "Alan", LastName: "White"}
	require.NoError(s.T(), s.storage.SaveUser(s.ctx, s.stranger))
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	if err != nil {
		s.T().Logf("cleanup connection failed: %v", err)
		return
	}
	defer conn.Close(s.ctx)

	if _, err := conn.Exec(s.ctx, "DELETE FROM tasks"); err != nil {
		s.T().Logf("cleanup failed: %v", err)
	}
	if _, err := conn.Exec(s.ctx, "UPDATE task_statuses SET active = TRUE"); err != nil {
		s.T().Logf("cleanup failed: %v", err)
	}
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration tests are skipped in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func at(day, hour int) time.Time {
	return time.Date(2020, time.April, day, hour, 0, 0, 0, time.UTC)
}

func (s *PostgresTestSuite) create(owner int64, handle task.StatusHandle, start, due time.Time) *task.Task {
	status, err := s.storage.GetStatusByHandle(s.ctx, handle)
	require.NoError(s.T(), err)

	t := task.New(owner, status, at(1, 0),
		task.WithTitle("Task"),
		task.WithDescription("Description"),
		task.WithStartDate(start),
		task.WithDueDate(due),
	)
	require.NoError(s.T(), s.storage.Create(s.ctx, t))
	return t
}

func (s *PostgresTestSuite) TestStorage_SeededStatuses() {
	for _, handle := range task.AllStatusHandles {
		status, err := s.storage.GetStatusByHandle(s.ctx, handle)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), handle, status.Handle)
		assert.Equal(s.T(), handle.DefaultDescription(), status.Description)
		assert.True(s.T(), status.Active)
	}

	_, err := s.storage.GetStatusByHandle(s.ctx, "DONE")
	assert.ErrorIs(s.T(), err, repository.ErrStatusNotFound)
}

func (s *PostgresTestSuite) TestStorage_CreateAndGet() {
	created := s.create(s.owner.ID, task.StatusPending, at(1, 10), at(1, 12))
	assert.NotZero(s.T(), created.ID)

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.owner.ID, retrieved.OwnerID)
	assert.Equal(s.T(), "Task", retrieved.Title)
	assert.Equal(s.T(), "Description", retrieved.Description)
	assert.True(s.T(), at(1, 10).Equal(retrieved.StartDate))
	assert.True(s.T(), at(1, 12).Equal(retrieved.DueDate))
	assert.True(s.T(), at(1, 0).Equal(retrieved.Created))
	assert.Equal(s.T(), task.StatusPending, retrieved.Status.Handle)
	assert.Equal(s.T(), "Pending", retrieved.Status.Description)

	_, err = s.storage.GetByID(s.ctx, created.ID+1000)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Update() {
	created := s.create(s.owner.ID, task.StatusPending, at(1, 10), at(1, 12))

	created.Apply(
		task.WithTitle("Updated"),
		task.WithStartDate(at(2, 8)),
	)
	created.OwnerID = s.stranger.ID
	require.NoError(s.T(), s.storage.Update(s.ctx, created))

	retrieved, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated", retrieved.Title)
	assert.Equal(s.T(), "Description", retrieved.Description)
	assert.True(s.T(), at(2, 8).Equal(retrieved.StartDate))
	assert.Equal(s.T(), s.owner.ID, retrieved.OwnerID)

	err = s.storage.Update(s.ctx, &task.Task{ID: created.ID + 1000, Status: created.Status})
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Delete() {
	created := s.create(s.owner.ID, task.StatusPending, at(1, 10), at(1, 12))

	require.NoError(s.T(), s.storage.Delete(s.ctx, created.ID))

	_, err := s.storage.GetByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
	assert.ErrorIs(s.T(), s.storage.Delete(s.ctx, created.ID), repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Find() {
	late := s.create(s.owner.ID, task.StatusPending, at(1, 14), at(1, 16))
	early := s.create(s.owner.ID, task.StatusPending, at(1, 8), at(1, 9))
	done := s.create(s.owner.ID, task.StatusCompleted, at(1, 10), at(1, 12))
	s.create(s.stranger.ID, task.StatusPending, at(1, 10), at(1, 12))
	tomorrow := s.create(s.owner.ID, task.StatusPending, at(2, 10), at(2, 12))

	start, due := at(1, 0), at(1, 23)
	afterNoon, beforeSeven := at(1, 13), at(1, 7)

	tests := []struct {
		name     string
		filter   task.Filter
		expected []int64
	}{
		{
			name:     "day window active only",
			filter:   task.Filter{OwnerID: s.owner.ID, StartDate: &start, DueDate: &due, ActiveOnly: true},
			expected: []int64{early.ID, late.ID},
		},
		{
			name:     "day window all statuses",
			filter:   task.Filter{OwnerID: s.owner.ID, StartDate: &start, DueDate: &due},
			expected: []int64{early.ID, done.ID, late.ID},
		},
		{
			name:     "start only",
			filter:   task.Filter{OwnerID: s.owner.ID, StartDate: &afterNoon},
			expected: []int64{late.ID, tomorrow.ID},
		},
		{
			name:     "due only",
			filter:   task.Filter{OwnerID: s.owner.ID, DueDate: &beforeSeven},
			expected: []int64{},
		},
		{
			name:     "no window",
			filter:   task.Filter{OwnerID: s.owner.ID, ActiveOnly: true},
			expected: []int64{early.ID, late.ID, tomorrow.ID},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			found, err := s.storage.Find(s.ctx, tt.filter)
			require.NoError(s.T(), err)

			ids := []int64{}
			for _, f := range found {
				ids = append(ids, f.ID)
			}
			assert.Equal(s.T(), tt.expected, ids)
		})
	}
}

func (s *PostgresTestSuite) TestStorage_SetStatusActive() {
	require.NoError(s.T(), s.storage.SetStatusActive(s.ctx, task.StatusExpired, false))

	status, err := s.storage.GetStatusByHandle(s.ctx, task.StatusExpired)
	require.NoError(s.T(), err)
	assert.False(s.T(), status.Active)

	assert.ErrorIs(s.T(), s.storage.SetStatusActive(s.ctx, "DONE", false), repository.ErrStatusNotFound)
}

func (s *PostgresTestSuite) TestStorage_Users() {
	found, err := s.storage.GetUserByID(s.ctx, s.owner.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "sam.green@test.com", found.Email)
	assert.False(s.T(), found.IsAdmin)

	promoted := &user.User{Email: "sam.green@test.com", FirstName: "Sam", LastName: "Green", IsAdmin: true}
	require.NoError(s.T(), s.storage.SaveUser(s.ctx, promoted))
	assert.Equal(s.T(), s.owner.ID, promoted.ID)

	found, err = s.storage.GetUserByID(s.ctx, s.owner.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), found.IsAdmin)

	_, err = s.storage.GetUserByID(s.ctx, -1)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	demoted := &user.User{Email: "sam.green@test.com", FirstName: "Sam", LastName: "Green"}
	require.NoError(s.T(), s.storage.SaveUser(s.ctx, demoted))
}

func (s *PostgresTestSuite) TestStorage_HealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}
