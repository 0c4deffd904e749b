package domain

import (
	"context"
	"time"
)

// Project is a single portfolio entry. Images holds the stored filenames of
// the uploads accepted by the most recent successful write, in upload order;
// the public base path is the serving layer's concern.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StoredFile is the result of one accepted upload.
type StoredFile struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// ProjectRepository is the port for project persistence. List returns
// projects in insertion order. Update replaces title, description and the
// entire image list. Update and Delete report a not-found record via the
// store's sentinel error, not a silent no-op.
type ProjectRepository interface {
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	Create(ctx context.Context, title, description string, images []string) (*Project, error)
	Update(ctx context.Context, id int64, title, description string, images []string) error
	Delete(ctx context.Context, id int64) error
}
