package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AutoLanguage lets the translation provider detect the source language.
const AutoLanguage = "auto"

// LookupRequest is a translate message as sent by the content side.
type LookupRequest struct {
	Text         string `json:"text"`
	SourceLang   string `json:"sourceLang"`
	TargetLang   string `json:"targetLang"`
	NeedPhonetic bool   `json:"needPhonetic"`
	PhoneticOnly bool   `json:"phoneticOnly"`
}

// Normalize trims the text and defaults an empty source language to "auto".
func (r LookupRequest) Normalize() LookupRequest {
	r.Text = strings.TrimSpace(r.Text)
	r.SourceLang = strings.TrimSpace(r.SourceLang)
	r.TargetLang = strings.TrimSpace(r.TargetLang)
	if r.SourceLang == "" {
		r.SourceLang = AutoLanguage
	}
	return r
}

// Validate checks the fields a lookup cannot run without.
func (r LookupRequest) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(r.Text) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "required"})
	}
	if strings.TrimSpace(r.TargetLang) == "" {
		errs = append(errs, FieldError{Field: "targetLang", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// WantsDictionary reports whether the request asks for dictionary data.
func (r LookupRequest) WantsDictionary() bool {
	return r.NeedPhonetic || r.PhoneticOnly
}

// Key identifies requests that share one in-flight lookup.
// Format: text-sourceLang-targetLang-needPhonetic-(phonetic|full).
func (r LookupRequest) Key() string {
	source := r.SourceLang
	if source == "" {
		source = AutoLanguage
	}
	mode := "full"
	if r.PhoneticOnly {
		mode = "phonetic"
	}

	var b strings.Builder
	b.Grow(len(r.Text) + len(source) + len(r.TargetLang) + 16)
	b.WriteString(r.Text)
	b.WriteByte('-')
	b.WriteString(source)
	b.WriteByte('-')
	b.WriteString(r.TargetLang)
	b.WriteByte('-')
	b.WriteString(strconv.FormatBool(r.NeedPhonetic))
	b.WriteByte('-')
	b.WriteString(mode)
	return b.String()
}

// LookupResult is the merged translation and dictionary response.
// A nil DictionaryEntry means no dictionary data; its fields are then absent from JSON.
type LookupResult struct {
	ResultText     string `json:"resultText"`
	SourceLanguage string `json:"sourceLanguage"`
	// Percentage is 1 for translatable text and 0 otherwise.
	Percentage    int    `json:"percentage"`
	CandidateText string `json:"candidateText"`
	IsError       bool   `json:"isError"`
	ErrorMessage  string `json:"errorMessage,omitempty"`

	*DictionaryEntry
}

// NewErrorResult returns a result carrying only the error flag and message.
func NewErrorResult(message string) *LookupResult {
	return &LookupResult{IsError: true, ErrorMessage: message}
}

// MarshalJSON writes an error result as exactly {"isError":true,"errorMessage":...}.
func (r LookupResult) MarshalJSON() ([]byte, error) {
	if r.IsError {
		return json.Marshal(struct {
			IsError      bool   `json:"isError"`
			ErrorMessage string `json:"errorMessage"`
		}{IsError: true, ErrorMessage: r.ErrorMessage})
	}

	type plain LookupResult
	return json.Marshal(plain(r))
}

// Dictionary returns the attached dictionary entry, or nil.
func (r *LookupResult) Dictionary() *DictionaryEntry {
	if r == nil {
		return nil
	}
	return r.DictionaryEntry
}
