// Package draft owns the single email being composed. All mutation of
// the draft goes through the Controller; everything else sees copies.
package draft

import (
	"errors"
	"strings"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// ErrEmptyContent blocks submission of a draft with no content.
var ErrEmptyContent = errors.New("email content is required")

// Controller is the single mutation entry point for the active draft.
type Controller struct {
	draft    models.Draft
	defaults models.UISettings
}

// NewController creates a controller with the draft in its default
// shape for the given preferences.
func NewController(defaults models.UISettings) *Controller {
	c := &Controller{defaults: defaults}
	c.Reset()
	return c
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.Draft {
	return c.draft
}

// ApplyTemplate overwrites the draft's subject and content with the
// template's. Tone, length, and language are left alone. A nil template
// is the explicit "None" selection and clears both fields.
func (c *Controller) ApplyTemplate(t *models.Template) {
	if t == nil {
		c.draft.Subject = ""
		c.draft.Content = ""
		return
	}
	c.draft.Subject = t.Subject
	c.draft.Content = t.Content
}

// SetSubject replaces the subject.
func (c *Controller) SetSubject(subject string) {
	c.draft.Subject = subject
}

// SetContent replaces the content.
func (c *Controller) SetContent(content string) {
	c.draft.Content = content
}

// SetTone replaces the tone; unknown values are ignored.
func (c *Controller) SetTone(tone models.Tone) {
	if tone.IsValid() {
		c.draft.Tone = tone
	}
}

// SetLength replaces the length; unknown values are ignored.
func (c *Controller) SetLength(length models.Length) {
	if length.IsValid() {
		c.draft.Length = length
	}
}

// SetLanguage replaces the language; unknown values are ignored.
func (c *Controller) SetLanguage(lang models.Language) {
	if lang.IsValid() {
		c.draft.Language = lang
	}
}

// Reset returns the draft to its default shape: empty subject and
// content, configured default tone, length, and language.
func (c *Controller) Reset() {
	c.draft = models.Draft{
		Tone:     c.defaults.DefaultTone,
		Length:   c.defaults.DefaultLength,
		Language: c.defaults.DefaultLanguage,
	}
	if c.draft.Tone == "" {
		c.draft.Tone = models.ToneProfessional
	}
	if c.draft.Length == "" {
		c.draft.Length = models.LengthMedium
	}
	if c.draft.Language == "" {
		c.draft.Language = models.LanguageEnglish
	}
}

// Validate checks the draft is submittable. Content is the only
// required field.
func (c *Controller) Validate() error {
	if strings.TrimSpace(c.draft.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}
