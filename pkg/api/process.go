package api

import (
	"context"
	"net/http"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// Improve submits the draft for improvement and returns the service's
// result. The caller is expected to have validated the draft; the
// service rejects empty content with a 4xx either way.
func (c *Client) Improve(ctx context.Context, draft models.Draft) (*models.ProcessingResult, error) {
	var result models.ProcessingResult
	if err := c.do(ctx, http.MethodPost, processPath, draft, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
