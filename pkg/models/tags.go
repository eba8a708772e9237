package models

import (
	"errors"
	"strings"
)

// Tag-related errors
var (
	ErrEmptyTagName   = errors.New("tag cannot be empty")
	ErrTagNameTooLong = errors.New("tag cannot exceed 50 characters")
)

// ParseTags splits a comma-separated tag string into trimmed tokens.
// The server stores tags as a flat string and enforces neither order nor
// uniqueness, so duplicates are dropped here keeping first appearance.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	return tags
}

// JoinTags renders a token slice back to the comma-separated wire form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// NormalizeTag lowercases and trims a single tag for comparison.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ValidateTag checks a single tag token before it is joined into the
// template's tag string.
func ValidateTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTagName
	}
	if len(tag) > 50 {
		return ErrTagNameTooLong
	}
	return nil
}
