package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
)

// scriptedService backs the manager tests with canned collections.
type scriptedService struct {
	templates  []models.Template
	categories []models.Category
	failWrites bool
	created    []models.TemplateDraft
	updated    map[int]models.TemplateDraft
	deleted    []int
}

func newScriptedService() *scriptedService {
	return &scriptedService{updated: map[int]models.TemplateDraft{}}
}

func (s *scriptedService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return s.templates, nil
}

func (s *scriptedService) CreateTemplate(ctx context.Context, d models.TemplateDraft) (*models.Template, error) {
	if s.failWrites {
		return nil, errors.New("server rejected the template")
	}
	s.created = append(s.created, d)
	t := models.Template{ID: len(s.created), Name: d.Name, Subject: d.Subject, Content: d.Content}
	s.templates = append(s.templates, t)
	return &t, nil
}

func (s *scriptedService) UpdateTemplate(ctx context.Context, id int, d models.TemplateDraft) (*models.Template, error) {
	if s.failWrites {
		return nil, errors.New("server rejected the template")
	}
	s.updated[id] = d
	return &models.Template{ID: id, Name: d.Name}, nil
}

func (s *scriptedService) DeleteTemplate(ctx context.Context, id int) error {
	if s.failWrites {
		return errors.New("delete failed")
	}
	s.deleted = append(s.deleted, id)
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			break
		}
	}
	return nil
}

func (s *scriptedService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *scriptedService) CreateCategory(ctx context.Context, d models.CategoryDraft) (*models.Category, error) {
	if s.failWrites {
		return nil, errors.New("server rejected the category")
	}
	c := models.Category{ID: 100 + len(s.categories), Name: d.Name, Description: d.Description}
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s *scriptedService) UpdateCategory(ctx context.Context, id int, d models.CategoryDraft) (*models.Category, error) {
	return &models.Category{ID: id, Name: d.Name}, nil
}

func (s *scriptedService) DeleteCategory(ctx context.Context, id int) error {
	return nil
}

func newTestManager(svc store.Service) *ManagerModel {
	st := store.New(svc, zerolog.Nop())
	st.Refresh(context.Background())
	m := NewManagerModel(st, zerolog.Nop())
	m.SetSize(100, 40)
	return m
}

// drain runs a command tree to completion, feeding messages back in.
func drain(t *testing.T, m *ManagerModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case spinner.TickMsg:
		// Ignore spinner animation during tests.
		return
	case nil:
		return
	default:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

func TestDialogSubmitRoutesToCreate(t *testing.T) {
	svc := newScriptedService()
	m := newTestManager(svc)

	m.handleKey(keyMsg("n"))
	if m.dialog != dialogTemplate {
		t.Fatal("n should open the template dialog")
	}

	m.tplForm.name.SetValue("Intro")
	m.tplForm.subject.SetValue("Hello")
	m.tplForm.content.SetValue("Hi there")

	drain(t, m, m.submitDialog())

	if len(svc.created) != 1 {
		t.Fatalf("created %d templates, want 1", len(svc.created))
	}
	if m.dialog != dialogNone {
		t.Error("dialog should close on success")
	}
}

func TestDialogSubmitRoutesToUpdate(t *testing.T) {
	svc := newScriptedService()
	svc.templates = []models.Template{{ID: 7, Name: "Intro", Subject: "Hello", Content: "Hi"}}
	m := newTestManager(svc)

	m.handleKey(keyMsg("e"))
	if m.dialog != dialogTemplate || !m.tplForm.isEdit() {
		t.Fatal("e should open the edit dialog for the selected template")
	}

	m.tplForm.name.SetValue("Renamed")
	drain(t, m, m.submitDialog())

	if _, ok := svc.updated[7]; !ok {
		t.Error("expected update call for id 7")
	}
	if len(svc.created) != 0 {
		t.Error("edit must not create")
	}
}

func TestDialogStaysOpenOnFailure(t *testing.T) {
	svc := newScriptedService()
	svc.failWrites = true
	m := newTestManager(svc)

	m.handleKey(keyMsg("n"))
	m.tplForm.name.SetValue("Intro")
	m.tplForm.subject.SetValue("Hello")
	m.tplForm.content.SetValue("Hi there")

	drain(t, m, m.submitDialog())

	if m.dialog != dialogTemplate {
		t.Error("dialog should stay open when the save fails")
	}
	if m.tplForm.validationErr == "" {
		t.Error("failure should be reported in the dialog")
	}
}

func TestInvalidDialogNeverReachesStore(t *testing.T) {
	svc := newScriptedService()
	m := newTestManager(svc)

	m.handleKey(keyMsg("n"))
	cmd := m.submitDialog()

	if cmd != nil {
		t.Error("invalid form should not produce a store command")
	}
	if len(svc.created) != 0 {
		t.Error("store must not be called for an invalid form")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := newScriptedService()
	svc.templates = []models.Template{{ID: 7, Name: "Intro"}}
	m := newTestManager(svc)

	m.handleKey(keyMsg("d"))
	if !m.confirm.Active() {
		t.Fatal("delete must show the confirmation prompt first")
	}
	if len(svc.deleted) != 0 {
		t.Fatal("nothing may be deleted before confirmation")
	}

	// Decline.
	m.handleKey(keyMsg("n"))
	if len(svc.deleted) != 0 {
		t.Error("declining must not delete")
	}

	// Accept.
	m.handleKey(keyMsg("d"))
	_, cmd := m.handleKey(keyMsg("y"))
	drain(t, m, cmd)

	if len(svc.deleted) != 1 || svc.deleted[0] != 7 {
		t.Errorf("deleted = %v, want [7]", svc.deleted)
	}
}

func TestCategoryDialogFlow(t *testing.T) {
	svc := newScriptedService()
	m := newTestManager(svc)
	m.pane = categoriesPane

	m.handleKey(keyMsg("n"))
	if m.dialog != dialogCategory {
		t.Fatal("n on the category pane should open the category dialog")
	}

	m.catForm.name.SetValue("Sales")
	m.catForm.description.SetValue("Outbound")
	drain(t, m, m.submitDialog())

	if len(svc.categories) != 1 || svc.categories[0].Name != "Sales" {
		t.Errorf("categories = %+v", svc.categories)
	}
	if m.dialog != dialogNone {
		t.Error("dialog should close on success")
	}
}

func TestRefreshAfterMutationShowsNewSnapshot(t *testing.T) {
	svc := newScriptedService()
	m := newTestManager(svc)

	m.handleKey(keyMsg("n"))
	m.tplForm.name.SetValue("Intro")
	m.tplForm.subject.SetValue("Hello")
	m.tplForm.content.SetValue("Hi there")
	drain(t, m, m.submitDialog())

	templates := m.store.Templates()
	if len(templates) != 1 || templates[0].Name != "Intro" {
		t.Errorf("snapshot after create = %+v", templates)
	}
}
