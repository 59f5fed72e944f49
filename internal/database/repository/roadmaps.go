package repository

import (
	"context"
	"database/sql"
)

// RoadmapRepo handles roadmaps.
type RoadmapRepo struct {
	db *sql.DB
}

func NewRoadmapRepo(db *sql.DB) *RoadmapRepo { return &RoadmapRepo{db: db} }

func (r *RoadmapRepo) Insert(ctx context.Context, m Roadmap) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO roadmaps(roadmap_id, name, description, project_id, status, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, m.ID, m.Name, m.Description, m.ProjectID, m.Status, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *RoadmapRepo) List(ctx context.Context) ([]Roadmap, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT roadmap_id, name, description, project_id, status, created_at, updated_at
	FROM roadmaps ORDER BY created_at, roadmap_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Roadmap
	for rows.Next() {
		var m Roadmap
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.ProjectID, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *RoadmapRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roadmaps`).Scan(&n)
	return n, err
}
