package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
	repo "taskPlanner/internal/repository"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = time.Millisecond * 100

const selectTasks = `SELECT
				t.id,
				t.user_id,
				t.title,
				t.description,
				t.start_date,
				t.due_date,
				t.created,
				s.id,
				s.handle,
				s.description,
				s.active
				FROM tasks t
				JOIN task_statuses s ON s.id = t.status_id`

type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
}

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string, poolCfg PoolConfig) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Invalid connection config", err)
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5
	if poolCfg.MaxConns > 0 {
		config.MaxConns = poolCfg.MaxConns
	}
	if poolCfg.MinConns > 0 {
		config.MinConns = poolCfg.MinConns
	}
	if poolCfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = poolCfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Pool creation failed", err)
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: Connected to PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(user_id, status_id, title, description, start_date, due_date, created)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.OwnerID,
		taskToCreate.Status.ID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.StartDate,
		taskToCreate.DueDate,
		taskToCreate.Created,
	).Scan(&taskToCreate.ID)
	if err != nil {
		logger.Error("Repository: Task insert failed", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("insert task: %w", err)
	}

	warnIfSlow(start, slowQuery)
	return nil
}

// Update rewrites every mutable column. Owner and created are never written.
func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET status_id = $1,
				title = $2,
				description = $3,
				start_date = $4,
				due_date = $5
			WHERE id = $6`

	tag, err := s.pool.Exec(ctx, query,
		taskToUpdate.Status.ID,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.StartDate,
		taskToUpdate.DueDate,
		taskToUpdate.ID,
	)
	if err != nil {
		logger.Error("Repository: Task update failed", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, slowQuery)
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	row := s.pool.QueryRow(ctx, selectTasks+` WHERE t.id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Task select failed", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("get task: %w", err)
	}

	warnIfSlow(start, slowQuery)
	return t, nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Task delete failed", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, slowQuery)
	return nil
}

// Find renders the filter as SQL. The window condition mirrors task.Filter.Match.
func (s *Storage) Find(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	start := time.Now()

	query, args := buildFindQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Task query failed", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Task scan failed", err)
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Row iteration failed", err)
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	warnIfSlow(start, slowQuery+time.Millisecond*time.Duration(len(tasks)))
	return tasks, nil
}

func buildFindQuery(filter task.Filter) (string, []any) {
	conditions := []string{"t.user_id = $1"}
	args := []any{filter.OwnerID}
	argID := 2

	switch {
	case filter.StartDate != nil && filter.DueDate != nil:
		from, to := argID, argID+1
		conditions = append(conditions, fmt.Sprintf(`(
					(t.start_date <= $%[1]d AND t.due_date >= $%[1]d)
					OR (t.start_date <= $%[2]d AND t.due_date >= $%[2]d)
					OR (t.start_date >= $%[1]d AND t.due_date <= $%[2]d)
				)`, from, to))
		args = append(args, *filter.StartDate, *filter.DueDate)
		argID += 2
	case filter.StartDate != nil:
		conditions = append(conditions, fmt.Sprintf("t.due_date >= $%d", argID))
		args = append(args, *filter.StartDate)
		argID++
	case filter.DueDate != nil:
		conditions = append(conditions, fmt.Sprintf("t.start_date <= $%d", argID))
		args = append(args, *filter.DueDate)
		argID++
	}

	if filter.ActiveOnly {
		conditions = append(conditions, fmt.Sprintf("s.handle = $%d", argID))
		args = append(args, string(task.StatusPending))
	}

	query := selectTasks + "\n\t\t\t\tWHERE " + strings.Join(conditions, " AND ") + "\n\t\t\t\tORDER BY t.start_date, t.id"
	return query, args
}

func (s *Storage) GetStatusByHandle(ctx context.Context, handle task.StatusHandle) (task.Status, error) {
	query := `SELECT id, handle, description, active
				FROM task_statuses
				WHERE handle = $1`

	var status task.Status
	err := s.pool.QueryRow(ctx, query, string(handle)).Scan(
		&status.ID,
		&status.Handle,
		&status.Description,
		&status.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Status{}, repo.ErrStatusNotFound
		}
		logger.Error("Repository: Status select failed", err, zap.String("handle", string(handle)))
		return task.Status{}, fmt.Errorf("get status: %w", err)
	}
	return status, nil
}

func (s *Storage) SetStatusActive(ctx context.Context, handle task.StatusHandle, active bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE task_statuses SET active = $1 WHERE handle = $2`, active, string(handle))
	if err != nil {
		logger.Error("Repository: Status update failed", err, zap.String("handle", string(handle)))
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrStatusNotFound
	}
	return nil
}

// SaveUser upserts by email and writes the id back into u.
func (s *Storage) SaveUser(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (email, first_name, last_name, is_admin)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (email) DO UPDATE
				SET first_name = EXCLUDED.first_name,
					last_name = EXCLUDED.last_name,
					is_admin = EXCLUDED.is_admin
				RETURNING id`

	err := s.pool.QueryRow(ctx, query, u.Email, u.FirstName, u.LastName, u.IsAdmin).Scan(&u.ID)
	if err != nil {
		logger.Error("Repository: User upsert failed", err, zap.String("email", u.Email))
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT id, email, first_name, last_name, is_admin
				FROM users
				WHERE id = $1`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: User select failed", err, zap.Int64("user_id", id))
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Title,
		&t.Description,
		&t.StartDate,
		&t.DueDate,
		&t.Created,
		&t.Status.ID,
		&t.Status.Handle,
		&t.Status.Description,
		&t.Status.Active,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func warnIfSlow(start time.Time, threshold time.Duration) {
	if time.Since(start) > threshold {
		logger.Warn("Repository: Slow query", zap.Duration("ms", time.Since(start)))
	}
}
