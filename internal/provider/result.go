package provider

import "errors"

var (
	// ErrNotConfigured indicates the provider lacks a required setting (e.g. an API key).
	ErrNotConfigured = errors.New("provider not configured")
	// ErrInvalidResponse indicates the upstream response had an unexpected shape.
	ErrInvalidResponse = errors.New("invalid provider response")
)

// TranslateResult is the structured result from a translation API provider.
type TranslateResult struct {
	Text string
	// SourceLanguage is the detected source language; empty if the provider does not report one.
	SourceLanguage string
	Candidates     []CandidateGroup
}

// CandidateGroup is a dictionary-style group of alternative translations.
type CandidateGroup struct {
	PartOfSpeech string
	Words        []string
}

// DictionaryResult is the structured result from a dictionary API provider.
type DictionaryResult struct {
	Word          string
	Transcription *string
	Entries       []EntryResult
}

// EntryResult represents one part-of-speech entry from an external dictionary.
type EntryResult struct {
	PartOfSpeech string
	Senses       []SenseResult
}

// SenseResult represents a single translation or definition of a word.
type SenseResult struct {
	Text     string
	Synonyms []string
	Examples []string
}
