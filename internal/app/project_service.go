package app

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"portfolio/internal/domain"
	"portfolio/internal/enrich"
)

// Uploader is the port for the upload pipeline.
type Uploader interface {
	Accept(files []*multipart.FileHeader) ([]domain.StoredFile, error)
}

// ExchangeSource provides the latest USD exchange-rate snapshot.
type ExchangeSource interface {
	LatestUSD(ctx context.Context) (*enrich.Rates, error)
}

// ActivitySource provides a single activity suggestion.
type ActivitySource interface {
	Suggest(ctx context.Context) (*enrich.Activity, error)
}

// Translator translates an ordered batch of texts into a target language.
type Translator interface {
	Translate(ctx context.Context, texts []string, target string) ([]string, error)
}

// Listing is the front-page payload: every project plus whatever enrichment
// succeeded. A nil ExchangeRate or Activity means that lookup failed or was
// disabled; the listing itself never fails on enrichment.
type Listing struct {
	Projects     []domain.Project `json:"projects"`
	ExchangeRate *enrich.Rates    `json:"exchangeRate"`
	Activity     *enrich.Activity `json:"activity"`
}

// ProjectService orchestrates project CRUD, the upload pipeline and the
// enrichment collaborators.
type ProjectService struct {
	repo       domain.ProjectRepository
	uploads    Uploader
	exchange   ExchangeSource
	activity   ActivitySource
	translator Translator
}

// NewProjectService creates a ProjectService. The collaborator arguments may
// be nil when unconfigured; the corresponding enrichment is then skipped.
func NewProjectService(repo domain.ProjectRepository, uploads Uploader, exchange ExchangeSource, activity ActivitySource, translator Translator) *ProjectService {
	return &ProjectService{
		repo:       repo,
		uploads:    uploads,
		exchange:   exchange,
		activity:   activity,
		translator: translator,
	}
}

// List returns all projects in insertion order together with the enrichment
// fields. Each collaborator failure degrades only its own field.
func (s *ProjectService) List(ctx context.Context) (*Listing, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &Listing{Projects: projects}

	if s.exchange != nil {
		rates, err := s.exchange.LatestUSD(ctx)
		switch {
		case err == nil:
			out.ExchangeRate = rates
		case !errors.Is(err, enrich.ErrDisabled):
			log.Printf("exchange rate lookup: %v", err)
		}
	}

	if s.activity != nil {
		activity, err := s.activity.Suggest(ctx)
		switch {
		case err == nil:
			out.Activity = activity
		case !errors.Is(err, enrich.ErrDisabled):
			log.Printf("activity lookup: %v", err)
		}
	}

	return out, nil
}

// Get returns one project. When lang is "ru" the title and description are
// replaced with their translations, submitted as an ordered two-element batch
// (index 0 is the title, index 1 the description). Any translation failure
// returns the untranslated project.
func (s *ProjectService) Get(ctx context.Context, id int64, lang string) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	if lang == "ru" && s.translator != nil {
		texts, err := s.translator.Translate(ctx, []string{project.Title, project.Description}, lang)
		if err != nil || len(texts) != 2 {
			if err != nil && !errors.Is(err, enrich.ErrDisabled) {
				log.Printf("translate project %d: %v", id, err)
			}
			return project, nil
		}
		project.Title = texts[0]
		project.Description = texts[1]
	}

	return project, nil
}

// Create runs the upload pipeline and, only when every file was accepted,
// persists a new project referencing the stored filenames.
func (s *ProjectService) Create(ctx context.Context, title, description string, files []*multipart.FileHeader) (*domain.Project, error) {
	names, err := s.acceptUploads(files)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, title, description, names)
}

// Update replaces title, description and the entire image list of an existing
// project. Files not re-uploaded become orphaned on disk and are kept.
func (s *ProjectService) Update(ctx context.Context, id int64, title, description string, files []*multipart.FileHeader) (*domain.Project, error) {
	names, err := s.acceptUploads(files)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, title, description, names); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a project. A missing record is domain.ErrNotFound; the
// project's stored images stay on disk.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProjectService) acceptUploads(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	stored, err := s.uploads.Accept(files)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(stored))
	for i, sf := range stored {
		names[i] = sf.Name
	}
	return names, nil
}
