// Package store keeps the client-side snapshot of the remote template
// and category collections. The snapshot is only ever replaced by a
// full fetch; mutations never patch it in place, so server-side derived
// fields can never drift from what the UI shows.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// Service is the remote side of the store. *api.Client satisfies it.
type Service interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id int, draft models.TemplateDraft) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, draft models.CategoryDraft) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, draft models.CategoryDraft) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// StaleReadError reports that a mutation was acknowledged by the server
// but the follow-up refresh failed, leaving the snapshot outdated. The
// mutation is not rolled back.
type StaleReadError struct {
	Err error
}

func (e *StaleReadError) Error() string {
	return fmt.Sprintf("change saved but refresh failed, showing stale data: %v", e.Err)
}

func (e *StaleReadError) Unwrap() error {
	return e.Err
}

// Store caches the last successful fetch of both collections. Reads and
// writes are guarded because Bubble Tea commands complete on their own
// goroutines.
type Store struct {
	svc Service
	log zerolog.Logger

	mu         sync.RWMutex
	templates  []models.Template
	categories []models.Category
}

// New creates an empty store; call Refresh to populate it.
func New(svc Service, log zerolog.Logger) *Store {
	return &Store{svc: svc, log: log}
}

// Refresh replaces the snapshot with a full fetch of templates and
// categories. When a fetch fails the previous snapshot of that
// collection stays available (stale-but-available) and the error is
// returned for logging.
func (s *Store) Refresh(ctx context.Context) error {
	templates, tErr := s.svc.ListTemplates(ctx)
	categories, cErr := s.svc.ListCategories(ctx)

	s.mu.Lock()
	if tErr == nil {
		s.templates = templates
	}
	if cErr == nil {
		s.categories = categories
	}
	s.mu.Unlock()

	if tErr != nil {
		s.log.Warn().Err(tErr).Msg("template fetch failed, keeping previous snapshot")
	}
	if cErr != nil {
		s.log.Warn().Err(cErr).Msg("category fetch failed, keeping previous snapshot")
	}

	return errors.Join(tErr, cErr)
}

// Templates returns a copy of the last fetched template collection.
func (s *Store) Templates() []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Categories returns a copy of the last fetched category collection.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Template looks up a template by id in the snapshot.
func (s *Store) Template(id int) (models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

// CategoryName resolves a category id to its name for display. The
// reference is weak: a dangling id resolves to the empty string.
func (s *Store) CategoryName(id int) string {
	if id == 0 {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// afterWrite runs the mandatory refresh once a mutation was
// acknowledged. A failed refresh is reported as *StaleReadError so the
// caller can tell "write failed" from "write landed, view is stale".
func (s *Store) afterWrite(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return &StaleReadError{Err: err}
	}
	return nil
}

// CreateTemplate stores a new template, then refetches.
func (s *Store) CreateTemplate(ctx context.Context, draft models.TemplateDraft) error {
	if _, err := s.svc.CreateTemplate(ctx, draft); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}

// UpdateTemplate replaces a template, then refetches.
func (s *Store) UpdateTemplate(ctx context.Context, id int, draft models.TemplateDraft) error {
	if _, err := s.svc.UpdateTemplate(ctx, id, draft); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}

// DeleteTemplate removes a template, then refetches. No client-side
// guard against deleting a referenced template; the server decides.
func (s *Store) DeleteTemplate(ctx context.Context, id int) error {
	if err := s.svc.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}

// CreateCategory stores a new category, then refetches.
func (s *Store) CreateCategory(ctx context.Context, draft models.CategoryDraft) error {
	if _, err := s.svc.CreateCategory(ctx, draft); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}

// UpdateCategory replaces a category, then refetches.
func (s *Store) UpdateCategory(ctx context.Context, id int, draft models.CategoryDraft) error {
	if _, err := s.svc.UpdateCategory(ctx, id, draft); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}

// DeleteCategory removes a category, then refetches.
func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	if err := s.svc.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.afterWrite(ctx)
}
