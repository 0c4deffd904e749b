package app

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/enrich"
	"portfolio/internal/upload"
)

type mockProjectRepo struct {
	listFn    func(ctx context.Context) ([]domain.Project, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Project, error)
	createFn  func(ctx context.Context, title, description string, images []string) (*domain.Project, error)
	updateFn  func(ctx context.Context, id int64, title, description string, images []string) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, title, description string, images []string) (*domain.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, title, description, images)
	}
	return &domain.Project{ID: 1, Title: title, Description: description, Images: images}, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, id int64, title, description string, images []string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, title, description, images)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockUploader struct {
	acceptFn func(files []*multipart.FileHeader) ([]domain.StoredFile, error)
	calls    int
}

func (m *mockUploader) Accept(files []*multipart.FileHeader) ([]domain.StoredFile, error) {
	m.calls++
	if m.acceptFn != nil {
		return m.acceptFn(files)
	}
	return nil, nil
}

type mockExchange struct {
	fn func(ctx context.Context) (*enrich.Rates, error)
}

func (m *mockExchange) LatestUSD(ctx context.Context) (*enrich.Rates, error) { return m.fn(ctx) }

type mockActivity struct {
	fn func(ctx context.Context) (*enrich.Activity, error)
}

func (m *mockActivity) Suggest(ctx context.Context) (*enrich.Activity, error) { return m.fn(ctx) }

type mockTranslator struct {
	fn func(ctx context.Context, texts []string, target string) ([]string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	return m.fn(ctx, texts, target)
}

func TestListWithEnrichment(t *testing.T) {
	repo := &mockProjectRepo{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}}, nil
		},
	}
	exchange := &mockExchange{fn: func(ctx context.Context) (*enrich.Rates, error) {
		return &enrich.Rates{Base: "USD", Rates: map[string]float64{"EUR": 0.9}}, nil
	}}
	activity := &mockActivity{fn: func(ctx context.Context) (*enrich.Activity, error) {
		return &enrich.Activity{Text: "Learn Go", Type: "education"}, nil
	}}
	svc := NewProjectService(repo, nil, exchange, activity, nil)

	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing.Projects) != 2 {
		t.Errorf("got %d projects, want 2", len(listing.Projects))
	}
	if listing.ExchangeRate == nil || listing.ExchangeRate.Base != "USD" {
		t.Errorf("exchange rate = %+v", listing.ExchangeRate)
	}
	if listing.Activity == nil || listing.Activity.Text != "Learn Go" {
		t.Errorf("activity = %+v", listing.Activity)
	}
}

func TestListDegradesOnEnrichmentFailure(t *testing.T) {
	repo := &mockProjectRepo{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: 1, Title: "one"}}, nil
		},
	}
	exchange := &mockExchange{fn: func(ctx context.Context) (*enrich.Rates, error) {
		return nil, errors.New("rate api down")
	}}
	activity := &mockActivity{fn: func(ctx context.Context) (*enrich.Activity, error) {
		return nil, enrich.ErrDisabled
	}}
	svc := NewProjectService(repo, nil, exchange, activity, nil)

	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("enrichment failure must not fail the listing: %v", err)
	}
	if len(listing.Projects) != 1 {
		t.Errorf("got %d projects, want 1", len(listing.Projects))
	}
	if listing.ExchangeRate != nil || listing.Activity != nil {
		t.Errorf("failed enrichment must stay nil: rate=%+v activity=%+v", listing.ExchangeRate, listing.Activity)
	}
}

func TestListWithoutCollaborators(t *testing.T) {
	svc := NewProjectService(&mockProjectRepo{}, nil, nil, nil, nil)
	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if listing.ExchangeRate != nil || listing.Activity != nil {
		t.Errorf("unconfigured enrichment must stay nil: %+v", listing)
	}
}

func TestGetTranslatesForRussian(t *testing.T) {
	repo := &mockProjectRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, Title: "Shop", Description: "A web shop"}, nil
		},
	}
	translator := &mockTranslator{fn: func(ctx context.Context, texts []string, target string) ([]string, error) {
		if target != "ru" {
			t.Errorf("target = %q, want ru", target)
		}
		if len(texts) != 2 || texts[0] != "Shop" || texts[1] != "A web shop" {
			t.Errorf("batch order wrong: %v", texts)
		}
		return []string{"Магазин", "Веб-магазин"}, nil
	}}
	svc := NewProjectService(repo, nil, nil, nil, translator)

	project, err := svc.Get(context.Background(), 1, "ru")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if project.Title != "Магазин" || project.Description != "Веб-магазин" {
		t.Errorf("got %q / %q", project.Title, project.Description)
	}
}

func TestGetSkipsTranslationForDefaultLanguage(t *testing.T) {
	repo := &mockProjectRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, Title: "Shop", Description: "A web shop"}, nil
		},
	}
	translator := &mockTranslator{fn: func(ctx context.Context, texts []string, target string) ([]string, error) {
		t.Fatal("translator must not be called for the default language")
		return nil, nil
	}}
	svc := NewProjectService(repo, nil, nil, nil, translator)

	project, err := svc.Get(context.Background(), 1, "en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if project.Title != "Shop" {
		t.Errorf("title = %q", project.Title)
	}
}

func TestGetTranslationFailureFallsBack(t *testing.T) {
	repo := &mockProjectRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, Title: "Shop", Description: "A web shop"}, nil
		},
	}
	for name, fn := range map[string]func(ctx context.Context, texts []string, target string) ([]string, error){
		"error": func(ctx context.Context, texts []string, target string) ([]string, error) {
			return nil, errors.New("translate api down")
		},
		"short batch": func(ctx context.Context, texts []string, target string) ([]string, error) {
			return []string{"Магазин"}, nil
		},
		"disabled": func(ctx context.Context, texts []string, target string) ([]string, error) {
			return nil, enrich.ErrDisabled
		},
	} {
		svc := NewProjectService(repo, nil, nil, nil, &mockTranslator{fn: fn})
		project, err := svc.Get(context.Background(), 1, "ru")
		if err != nil {
			t.Fatalf("%s: translation failure must not fail the read: %v", name, err)
		}
		if project.Title != "Shop" || project.Description != "A web shop" {
			t.Errorf("%s: got %q / %q, want original text", name, project.Title, project.Description)
		}
	}
}

func TestGetMissingProject(t *testing.T) {
	svc := NewProjectService(&mockProjectRepo{}, nil, nil, nil, nil)
	if _, err := svc.Get(context.Background(), 99, "en"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCreatePersistsStoredNames(t *testing.T) {
	uploader := &mockUploader{
		acceptFn: func(files []*multipart.FileHeader) ([]domain.StoredFile, error) {
			return []domain.StoredFile{{Name: "abc.png"}, {Name: "def.jpg"}}, nil
		},
	}
	var gotImages []string
	repo := &mockProjectRepo{
		createFn: func(ctx context.Context, title, description string, images []string) (*domain.Project, error) {
			gotImages = images
			return &domain.Project{ID: 1, Title: title, Description: description, Images: images}, nil
		},
	}
	svc := NewProjectService(repo, uploader, nil, nil, nil)

	files := []*multipart.FileHeader{{Filename: "a.png"}, {Filename: "b.jpg"}}
	if _, err := svc.Create(context.Background(), "t", "d", files); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(gotImages) != 2 || gotImages[0] != "abc.png" || gotImages[1] != "def.jpg" {
		t.Errorf("persisted images = %v", gotImages)
	}
}

func TestCreateUploadFailureAbortsPersistence(t *testing.T) {
	uploader := &mockUploader{
		acceptFn: func(files []*multipart.FileHeader) ([]domain.StoredFile, error) {
			return nil, upload.ErrUnsupportedExtension
		},
	}
	repo := &mockProjectRepo{
		createFn: func(ctx context.Context, title, description string, images []string) (*domain.Project, error) {
			t.Fatal("repo.Create called after upload failure")
			return nil, nil
		},
	}
	svc := NewProjectService(repo, uploader, nil, nil, nil)

	files := []*multipart.FileHeader{{Filename: "a.exe"}}
	if _, err := svc.Create(context.Background(), "t", "d", files); !errors.Is(err, upload.ErrUnsupportedExtension) {
		t.Fatalf("got %v, want ErrUnsupportedExtension", err)
	}
}

func TestCreateWithoutFilesSkipsUploader(t *testing.T) {
	uploader := &mockUploader{}
	svc := NewProjectService(&mockProjectRepo{}, uploader, nil, nil, nil)

	if _, err := svc.Create(context.Background(), "t", "d", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if uploader.calls != 0 {
		t.Errorf("uploader called %d times for empty batch", uploader.calls)
	}
}

func TestUpdateReplacesImagesAndReturnsFreshRow(t *testing.T) {
	uploader := &mockUploader{
		acceptFn: func(files []*multipart.FileHeader) ([]domain.StoredFile, error) {
			return []domain.StoredFile{{Name: "new.png"}}, nil
		},
	}
	var updatedImages []string
	repo := &mockProjectRepo{
		updateFn: func(ctx context.Context, id int64, title, description string, images []string) error {
			updatedImages = images
			return nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*domain.Project, error) {
			return &domain.Project{ID: id, Title: "t2", Images: updatedImages}, nil
		},
	}
	svc := NewProjectService(repo, uploader, nil, nil, nil)

	project, err := svc.Update(context.Background(), 5, "t2", "d2", []*multipart.FileHeader{{Filename: "n.png"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(project.Images) != 1 || project.Images[0] != "new.png" {
		t.Errorf("images = %v, want [new.png]", project.Images)
	}
}

func TestUpdateMissingProject(t *testing.T) {
	repo := &mockProjectRepo{
		updateFn: func(ctx context.Context, id int64, title, description string, images []string) error {
			return domain.ErrNotFound
		},
	}
	svc := NewProjectService(repo, &mockUploader{}, nil, nil, nil)

	if _, err := svc.Update(context.Background(), 99, "t", "d", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingProject(t *testing.T) {
	repo := &mockProjectRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return domain.ErrNotFound
		},
	}
	svc := NewProjectService(repo, nil, nil, nil, nil)

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
