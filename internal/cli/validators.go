package cli

import (
	"fmt"
	"strings"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// ParseTone validates and normalizes a tone flag value.
func ParseTone(s string) (models.Tone, error) {
	tone := models.Tone(strings.ToLower(strings.TrimSpace(s)))
	if !tone.IsValid() {
		return "", fmt.Errorf("invalid tone: %s (must be: professional, casual, formal, or friendly)", s)
	}
	return tone, nil
}

// ParseLength validates and normalizes a length flag value.
func ParseLength(s string) (models.Length, error) {
	length := models.Length(strings.ToLower(strings.TrimSpace(s)))
	if !length.IsValid() {
		return "", fmt.Errorf("invalid length: %s (must be: short, medium, or long)", s)
	}
	return length, nil
}

// ParseLanguage validates and normalizes a language flag value.
func ParseLanguage(s string) (models.Language, error) {
	lang := models.Language(strings.ToLower(strings.TrimSpace(s)))
	if !lang.IsValid() {
		return "", fmt.Errorf("invalid language: %s (must be: en, es, fr, or de)", s)
	}
	return lang, nil
}

// ValidateTemplateDraft checks the required template fields before a
// create or update call.
func ValidateTemplateDraft(draft models.TemplateDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("template name is required")
	}
	if strings.TrimSpace(draft.Subject) == "" {
		return fmt.Errorf("template subject is required")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return fmt.Errorf("template content is required")
	}
	for _, tag := range models.ParseTags(draft.Tags) {
		if err := models.ValidateTag(tag); err != nil {
			return fmt.Errorf("invalid tag %q: %w", tag, err)
		}
	}
	return nil
}

// ValidateCategoryDraft checks the required category fields.
func ValidateCategoryDraft(draft models.CategoryDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}
