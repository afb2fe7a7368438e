// Package settings holds the user settings the lookup pipeline reads at call time.
package settings

import (
	"strings"
	"sync"

	"github.com/chyxhtc/simple-translate-dict/internal/config"
)

// Settings is a snapshot of the user settings.
type Settings struct {
	TargetLang         string
	SecondTargetLang   string
	DictionaryAPIKey   string
	DictionaryProvider string
	TranslationAPI     string

	Width               int
	Height              int
	PanelOffset         int
	PanelDirection      string
	PanelReferencePoint string

	FontSize           int
	CandidateFontSize  int
	ResultFontColor    string
	CandidateFontColor string
	BgColor            string

	IfShowCandidate          bool
	IfCheckLang              bool
	IfChangeSecondLangOnPage bool
	WhenSelectText           string
}

// FromConfig builds the initial settings from the config seed.
func FromConfig(c config.SettingsConfig) Settings {
	return Settings{
		TargetLang:               c.TargetLang,
		SecondTargetLang:         c.SecondTargetLang,
		DictionaryAPIKey:         c.DictionaryAPIKey,
		DictionaryProvider:       c.DictionaryProvider,
		TranslationAPI:           c.TranslationAPI,
		Width:                    c.Width,
		Height:                   c.Height,
		PanelOffset:              c.PanelOffset,
		PanelDirection:           c.PanelDirection,
		PanelReferencePoint:      c.PanelReferencePoint,
		FontSize:                 c.FontSize,
		CandidateFontSize:        c.CandidateFontSize,
		ResultFontColor:          c.ResultFontColor,
		CandidateFontColor:       c.CandidateFontColor,
		BgColor:                  c.BgColor,
		IfShowCandidate:          c.IfShowCandidate,
		IfCheckLang:              c.IfCheckLang,
		IfChangeSecondLangOnPage: c.IfChangeSecondLangOnPage,
		WhenSelectText:           c.WhenSelectText,
	}
}

// Store is a concurrency-safe settings holder. Readers always see a complete snapshot.
type Store struct {
	mu        sync.RWMutex
	current   Settings
	listeners []func(Settings)
}

// NewStore creates a Store holding initial.
func NewStore(initial Settings) *Store {
	return &Store{current: initial}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies fn to a copy of the settings, stores it and notifies listeners.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	next := s.current
	fn(&next)
	s.current = next
	listeners := append([]func(Settings){}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// OnChange registers fn to be called after every Update.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// DictionaryAPIKey returns the trimmed dictionary API key; empty means not configured.
func (s *Store) DictionaryAPIKey() string {
	return strings.TrimSpace(s.Get().DictionaryAPIKey)
}

func (s *Store) TargetLang() string         { return s.Get().TargetLang }
func (s *Store) TranslationAPI() string     { return s.Get().TranslationAPI }
func (s *Store) DictionaryProvider() string { return s.Get().DictionaryProvider }
