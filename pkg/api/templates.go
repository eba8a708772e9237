package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// ListTemplates fetches the full template collection. An empty
// collection is a valid answer, not an error.
func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := c.do(ctx, http.MethodGet, templatesPath, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate stores a new template and returns it with the
// server-assigned id.
func (c *Client) CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.Template, error) {
	var created models.Template
	if err := c.do(ctx, http.MethodPost, templatesPath, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate replaces the template with the given id.
func (c *Client) UpdateTemplate(ctx context.Context, id int, draft models.TemplateDraft) (*models.Template, error) {
	var updated models.Template
	path := fmt.Sprintf("%s/%d", templatesPath, id)
	if err := c.do(ctx, http.MethodPut, path, draft, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTemplate removes the template with the given id.
func (c *Client) DeleteTemplate(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", templatesPath, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
