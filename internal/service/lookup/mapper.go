package lookup

import (
	"net/url"
	"strings"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

// URLs holds the bases of the derived audio and reference links.
type URLs struct {
	TTS       string
	BackupTTS string
	Forvo     string
	DictTTS   string
	Cambridge string
}

// DefaultURLs returns the public endpoints.
func DefaultURLs() URLs {
	return URLs{
		TTS:       "https://translate.google.com/translate_tts",
		BackupTTS: "https://api.dictionaryapi.dev/media/pronunciations/en",
		Forvo:     "https://forvo.com/word",
		DictTTS:   "https://www.dictionary.com/browse/sound",
		Cambridge: "https://dictionary.cambridge.org/pronunciation/english",
	}
}

func (u URLs) withDefaults() URLs {
	d := DefaultURLs()
	if u.TTS == "" {
		u.TTS = d.TTS
	}
	if u.BackupTTS == "" {
		u.BackupTTS = d.BackupTTS
	}
	if u.Forvo == "" {
		u.Forvo = d.Forvo
	}
	if u.DictTTS == "" {
		u.DictTTS = d.DictTTS
	}
	if u.Cambridge == "" {
		u.Cambridge = d.Cambridge
	}
	return u
}

// buildEntry normalizes a provider result into a DictionaryEntry with derived links.
// The caller checks domain.HasData before attaching it.
func buildEntry(text string, res *provider.DictionaryResult, urls URLs) *domain.DictionaryEntry {
	trimmed := strings.TrimSpace(text)
	word := domain.CleanWord(trimmed)

	return &domain.DictionaryEntry{
		IPA:             normalizeIPA(res.Transcription),
		Definitions:     definitions(res.Entries),
		Synonyms:        synonyms(res.Entries),
		TTS:             urls.TTS + "?ie=UTF-8&q=" + url.QueryEscape(trimmed) + "&tl=en&client=tw-ob",
		BackupTTS:       join(urls.BackupTTS, word) + ".mp3",
		ForvoURL:        join(urls.Forvo, word) + "/",
		DictTTSURL:      join(urls.DictTTS, word),
		CambridgeTTSURL: join(urls.Cambridge, word),
		Word:            word,
	}
}

func join(base, word string) string {
	return strings.TrimRight(base, "/") + "/" + word
}

func normalizeIPA(ts *string) *string {
	if ts == nil {
		return nil
	}
	v := strings.TrimSpace(*ts)
	if v == "" {
		return nil
	}
	return &v
}

// definitions: meanings are each sense text followed by its synonyms; examples
// are flattened across senses and capped. An entry keeps its part of speech even with no meanings.
func definitions(entries []provider.EntryResult) []domain.Definition {
	var defs []domain.Definition
	for _, e := range entries {
		meanings := []string{}
		examples := []string{}
		for _, s := range e.Senses {
			if t := strings.TrimSpace(s.Text); t != "" {
				meanings = append(meanings, t)
			}
			for _, syn := range s.Synonyms {
				if t := strings.TrimSpace(syn); t != "" {
					meanings = append(meanings, t)
				}
			}
			for _, ex := range s.Examples {
				if len(examples) == domain.MaxExamplesPerDefinition {
					break
				}
				if t := strings.TrimSpace(ex); t != "" {
					examples = append(examples, t)
				}
			}
		}
		defs = append(defs, domain.Definition{
			PartOfSpeech: e.PartOfSpeech,
			Meanings:     meanings,
			Examples:     examples,
		})
	}
	return defs
}

// synonyms collects synonyms across all entries, first-seen order, no duplicates.
func synonyms(entries []provider.EntryResult) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, s := range e.Senses {
			for _, syn := range s.Synonyms {
				t := strings.TrimSpace(syn)
				if t == "" {
					continue
				}
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				out = append(out, t)
				if len(out) == domain.MaxSynonyms {
					return out
				}
			}
		}
	}
	return out
}
