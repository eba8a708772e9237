package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// fakeService is an in-memory stand-in for the remote collections.
type fakeService struct {
	templates  []models.Template
	categories []models.Category
	nextID     int

	listErr   error
	mutateErr error

	listCalls int
}

func newFakeService() *fakeService {
	return &fakeService{nextID: 1}
}

func (f *fakeService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Template, len(f.templates))
	copy(out, f.templates)
	return out, nil
}

func (f *fakeService) CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.Template, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	created := models.Template{
		ID:         f.nextID,
		Name:       draft.Name,
		Subject:    draft.Subject,
		Content:    draft.Content,
		CategoryID: draft.CategoryID,
		Tags:       draft.Tags,
		IsPublic:   draft.IsPublic,
	}
	f.nextID++
	f.templates = append(f.templates, created)
	return &created, nil
}

func (f *fakeService) UpdateTemplate(ctx context.Context, id int, draft models.TemplateDraft) (*models.Template, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	for i := range f.templates {
		if f.templates[i].ID == id {
			f.templates[i].Name = draft.Name
			f.templates[i].Subject = draft.Subject
			f.templates[i].Content = draft.Content
			f.templates[i].CategoryID = draft.CategoryID
			f.templates[i].Tags = draft.Tags
			f.templates[i].IsPublic = draft.IsPublic
			return &f.templates[i], nil
		}
	}
	return nil, errors.New("template not found")
}

func (f *fakeService) DeleteTemplate(ctx context.Context, id int) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.templates {
		if f.templates[i].ID == id {
			f.templates = append(f.templates[:i], f.templates[i+1:]...)
			return nil
		}
	}
	return errors.New("template not found")
}

func (f *fakeService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeService) CreateCategory(ctx context.Context, draft models.CategoryDraft) (*models.Category, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	created := models.Category{ID: f.nextID, Name: draft.Name, Description: draft.Description}
	f.nextID++
	f.categories = append(f.categories, created)
	return &created, nil
}

func (f *fakeService) UpdateCategory(ctx context.Context, id int, draft models.CategoryDraft) (*models.Category, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = draft.Name
			f.categories[i].Description = draft.Description
			return &f.categories[i], nil
		}
	}
	return nil, errors.New("category not found")
}

func (f *fakeService) DeleteCategory(ctx context.Context, id int) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return errors.New("category not found")
}

func newTestStore(svc Service) *Store {
	return New(svc, zerolog.Nop())
}

func TestCreateThenListRoundTrip(t *testing.T) {
	svc := newFakeService()
	s := newTestStore(svc)
	ctx := context.Background()

	draft := models.TemplateDraft{
		Name:     "Intro",
		Subject:  "Hello",
		Content:  "Hi there",
		Tags:     "intro, welcome",
		IsPublic: true,
	}
	require.NoError(t, s.CreateTemplate(ctx, draft))

	templates := s.Templates()
	require.Len(t, templates, 1)
	got := templates[0]
	assert.Equal(t, draft.Name, got.Name)
	assert.Equal(t, draft.Subject, got.Subject)
	assert.Equal(t, draft.Content, got.Content)
	assert.Equal(t, draft.Tags, got.Tags)
	assert.Equal(t, draft.IsPublic, got.IsPublic)
	assert.NotZero(t, got.ID)
}

func TestMutationTriggersRefetch(t *testing.T) {
	svc := newFakeService()
	s := newTestStore(svc)
	ctx := context.Background()

	calls := svc.listCalls
	require.NoError(t, s.CreateTemplate(ctx, models.TemplateDraft{Name: "Intro"}))
	assert.Equal(t, calls+1, svc.listCalls, "create must refetch the collection")

	id := s.Templates()[0].ID
	calls = svc.listCalls
	require.NoError(t, s.UpdateTemplate(ctx, id, models.TemplateDraft{Name: "Renamed"}))
	assert.Equal(t, calls+1, svc.listCalls, "update must refetch the collection")
	assert.Equal(t, "Renamed", s.Templates()[0].Name)

	calls = svc.listCalls
	require.NoError(t, s.DeleteTemplate(ctx, id))
	assert.Equal(t, calls+1, svc.listCalls, "delete must refetch the collection")
	assert.Empty(t, s.Templates())
}

func TestListIdempotent(t *testing.T) {
	svc := newFakeService()
	svc.templates = []models.Template{
		{ID: 1, Name: "Intro"},
		{ID: 2, Name: "Follow-up"},
	}
	s := newTestStore(svc)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	first := s.Templates()
	require.NoError(t, s.Refresh(ctx))
	second := s.Templates()

	assert.Equal(t, first, second)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	svc := newFakeService()
	svc.templates = []models.Template{{ID: 1, Name: "Intro"}}
	svc.categories = []models.Category{{ID: 2, Name: "Sales"}}
	s := newTestStore(svc)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))

	svc.listErr = errors.New("connection refused")
	err := s.Refresh(ctx)
	require.Error(t, err)

	// Stale but available.
	assert.Len(t, s.Templates(), 1)
	assert.Len(t, s.Categories(), 1)
}

func TestMutationFailureLeavesSnapshotUnchanged(t *testing.T) {
	svc := newFakeService()
	s := newTestStore(svc)
	ctx := context.Background()

	require.NoError(t, s.CreateTemplate(ctx, models.TemplateDraft{Name: "Intro"}))
	before := s.Templates()

	err := s.DeleteTemplate(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, before, s.Templates())
}

func TestStaleReadAfterSuccessfulMutation(t *testing.T) {
	svc := newFakeService()
	s := newTestStore(svc)
	ctx := context.Background()

	require.NoError(t, s.CreateTemplate(ctx, models.TemplateDraft{Name: "Intro"}))

	// The write lands, the refetch does not.
	svc.listErr = errors.New("connection reset")
	err := s.CreateTemplate(ctx, models.TemplateDraft{Name: "Second"})
	require.Error(t, err)

	var staleErr *StaleReadError
	require.ErrorAs(t, err, &staleErr)

	// Snapshot is outdated: the second template exists remotely but is
	// not visible yet.
	assert.Len(t, s.Templates(), 1)
	assert.Len(t, svc.templates, 2)
}

func TestCategoryName(t *testing.T) {
	svc := newFakeService()
	svc.categories = []models.Category{{ID: 4, Name: "Sales"}}
	s := newTestStore(svc)

	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, "Sales", s.CategoryName(4))
	assert.Equal(t, "", s.CategoryName(0), "zero id means no category")
	assert.Equal(t, "", s.CategoryName(99), "dangling reference resolves to empty")
}

func TestTemplateLookup(t *testing.T) {
	svc := newFakeService()
	svc.templates = []models.Template{{ID: 3, Name: "Intro"}}
	s := newTestStore(svc)
	require.NoError(t, s.Refresh(context.Background()))

	got, ok := s.Template(3)
	require.True(t, ok)
	assert.Equal(t, "Intro", got.Name)

	_, ok = s.Template(8)
	assert.False(t, ok)
}
