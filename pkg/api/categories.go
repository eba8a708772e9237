package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// ListCategories fetches the full category collection.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory stores a new category and returns it with the
// server-assigned id.
func (c *Client) CreateCategory(ctx context.Context, draft models.CategoryDraft) (*models.Category, error) {
	var created models.Category
	if err := c.do(ctx, http.MethodPost, categoriesPath, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory replaces the category with the given id.
func (c *Client) UpdateCategory(ctx context.Context, id int, draft models.CategoryDraft) (*models.Category, error) {
	var updated models.Category
	path := fmt.Sprintf("%s/%d", categoriesPath, id)
	if err := c.do(ctx, http.MethodPut, path, draft, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes the category with the given id. Templates
// referencing it keep their dangling category_id; referential policy is
// the server's call.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", categoriesPath, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
