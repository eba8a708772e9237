package models

// Tone controls the voice the improvement service writes in.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
	ToneFriendly     Tone = "friendly"
)

// Tones lists all tones in display order.
var Tones = []Tone{ToneProfessional, ToneCasual, ToneFormal, ToneFriendly}

// IsValid checks if the tone is one of the supported values.
func (t Tone) IsValid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFormal, ToneFriendly:
		return true
	}
	return false
}

// Length controls the target length of the improved email.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Lengths lists all lengths in display order.
var Lengths = []Length{LengthShort, LengthMedium, LengthLong}

// IsValid checks if the length is one of the supported values.
func (l Length) IsValid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// Language selects the language the improved email is written in.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageGerman  Language = "de"
)

// Languages lists all languages in display order.
var Languages = []Language{LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman}

// IsValid checks if the language is one of the supported values.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman:
		return true
	}
	return false
}

// Draft is the single email being composed. There is exactly one active
// draft at a time, owned by draft.Controller.
type Draft struct {
	Subject  string   `json:"subject,omitempty"`
	Content  string   `json:"content"`
	Tone     Tone     `json:"tone,omitempty"`
	Length   Length   `json:"length,omitempty"`
	Language Language `json:"language,omitempty"`
}

// Template is a reusable email skeleton stored on the remote service.
// The client only ever holds a read-only copy of the last fetch.
type Template struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id,omitempty"`
	Tags       string `json:"tags,omitempty"`
	IsPublic   bool   `json:"is_public"`
}

// TemplateDraft carries the user-editable template fields for create
// and update calls. The server assigns the id.
type TemplateDraft struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id,omitempty"`
	Tags       string `json:"tags,omitempty"`
	IsPublic   bool   `json:"is_public"`
}

// Category groups templates. Templates reference categories by id only;
// deleting a category does not touch the templates that point at it.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryDraft carries the user-editable category fields.
type CategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProcessingResult is the improvement service's answer for one draft.
// Immutable once received; replaced wholesale by the next submission.
type ProcessingResult struct {
	ImprovedContent string   `json:"improved_content"`
	Suggestions     []string `json:"suggestions"`
	Corrections     []string `json:"corrections"`
}
