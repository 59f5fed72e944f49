package repository

import (
	"context"
	"database/sql"
)

// TaskRepo handles tasks.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tasks(task_id, title, description, priority, status, due_days,
	 start_date, end_date, project_id, roadmap_id, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, t.ID, t.Title, t.Description, t.Priority, t.Status, t.DueDays,
		t.StartDate, t.EndDate, t.ProjectID, t.RoadmapID, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepo) List(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT task_id, title, description, priority, status, due_days,
	 start_date, end_date, project_id, roadmap_id, created_at, updated_at
	FROM tasks ORDER BY created_at, task_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.DueDays,
			&t.StartDate, &t.EndDate, &t.ProjectID, &t.RoadmapID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT task_id, title, description, priority, status, due_days,
	 start_date, end_date, project_id, roadmap_id, created_at, updated_at
	FROM tasks WHERE project_id = ? ORDER BY created_at, task_id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.DueDays,
			&t.StartDate, &t.EndDate, &t.ProjectID, &t.RoadmapID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}
