package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio/internal/domain"

	"github.com/lib/pq"
)

// ProjectRepo implements domain.ProjectRepository on DB.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo wraps a DB as a ProjectRepository.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// List returns all projects in insertion order.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, title, description, images, created_at FROM projects ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, pq.Array(&p.Images), &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID retrieves a project by ID. Absent projects yield (nil, nil).
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, title, description, images, created_at FROM projects WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Title, &p.Description, pq.Array(&p.Images), &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project with its full image list.
func (r *ProjectRepo) Create(ctx context.Context, title, description string, images []string) (*domain.Project, error) {
	if images == nil {
		images = []string{}
	}
	var p domain.Project
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO projects (title, description, images, created_at) VALUES ($1, $2, $3, $4) RETURNING id, title, description, images, created_at",
		title, description, pq.Array(images), time.Now(),
	).Scan(&p.ID, &p.Title, &p.Description, pq.Array(&p.Images), &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces title, description and the entire image list.
func (r *ProjectRepo) Update(ctx context.Context, id int64, title, description string, images []string) error {
	if images == nil {
		images = []string{}
	}
	res, err := r.db.sql.ExecContext(ctx,
		"UPDATE projects SET title = $1, description = $2, images = $3 WHERE id = $4",
		title, description, pq.Array(images), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a project by ID. A missing record is domain.ErrNotFound.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
