package domain

import "strings"

const (
	// MaxExamplesPerDefinition bounds Definition.Examples.
	MaxExamplesPerDefinition = 2
	// MaxSynonyms bounds DictionaryEntry.Synonyms.
	MaxSynonyms = 5
)

// Definition groups meanings and examples under one part of speech.
type Definition struct {
	PartOfSpeech string   `json:"partOfSpeech"`
	Meanings     []string `json:"meanings"`
	Examples     []string `json:"examples"`
}

// DictionaryEntry is the dictionary data attached to a single-word lookup.
type DictionaryEntry struct {
	IPA             *string      `json:"ipa"`
	Definitions     []Definition `json:"definitions"`
	Synonyms        []string     `json:"synonyms"`
	TTS             string       `json:"tts"`
	BackupTTS       string       `json:"backupTts"`
	ForvoURL        string       `json:"forvoUrl"`
	DictTTSURL      string       `json:"dictTtsUrl"`
	CambridgeTTSURL string       `json:"cambridgeTtsUrl"`
	// Word is the cleaned form used to build the audio and reference URLs.
	Word string `json:"word"`
}

// HasData reports whether at least one of IPA, definitions or synonyms is present.
func HasData(e *DictionaryEntry) bool {
	if e == nil {
		return false
	}
	if e.IPA != nil && strings.TrimSpace(*e.IPA) != "" {
		return true
	}
	return len(e.Definitions) > 0 || len(e.Synonyms) > 0
}
