package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

func TestBuildEntry_DerivedURLs(t *testing.T) {
	t.Parallel()

	entry := buildEntry("  Hello! ", &provider.DictionaryResult{}, DefaultURLs())

	assert.Equal(t, "hello", entry.Word)
	assert.Equal(t, "https://translate.google.com/translate_tts?ie=UTF-8&q=Hello%21&tl=en&client=tw-ob", entry.TTS)
	assert.Equal(t, "https://api.dictionaryapi.dev/media/pronunciations/en/hello.mp3", entry.BackupTTS)
	assert.Equal(t, "https://forvo.com/word/hello/", entry.ForvoURL)
	assert.Equal(t, "https://www.dictionary.com/browse/sound/hello", entry.DictTTSURL)
	assert.Equal(t, "https://dictionary.cambridge.org/pronunciation/english/hello", entry.CambridgeTTSURL)
}

func TestBuildEntry_CustomURLBases(t *testing.T) {
	t.Parallel()

	urls := URLs{Forvo: "http://localhost/forvo/"}.withDefaults()
	entry := buildEntry("cat", &provider.DictionaryResult{}, urls)

	assert.Equal(t, "http://localhost/forvo/cat/", entry.ForvoURL)
	assert.Equal(t, "https://dictionary.cambridge.org/pronunciation/english/cat", entry.CambridgeTTSURL)
}

func TestBuildEntry_Normalization(t *testing.T) {
	t.Parallel()

	res := &provider.DictionaryResult{
		Transcription: strPtr(" kæt "),
		Entries: []provider.EntryResult{
			{
				PartOfSpeech: "noun",
				Senses: []provider.SenseResult{
					{Text: "feline", Synonyms: []string{"kitty", "puss"}, Examples: []string{"ex1", "ex2"}},
					{Text: "moggy", Synonyms: []string{"kitty"}, Examples: []string{"ex3"}},
				},
			},
			{
				PartOfSpeech: "verb",
				Senses: []provider.SenseResult{
					{Text: "vomit", Synonyms: []string{"puke", "spew", "retch", "heave"}},
				},
			},
			{PartOfSpeech: "adjective", Senses: []provider.SenseResult{{Text: " "}}},
		},
	}

	entry := buildEntry("cat", res, DefaultURLs())

	require.NotNil(t, entry.IPA)
	assert.Equal(t, "kæt", *entry.IPA)

	require.Len(t, entry.Definitions, 3)
	assert.Equal(t, domain.Definition{
		PartOfSpeech: "noun",
		Meanings:     []string{"feline", "kitty", "puss", "moggy", "kitty"},
		Examples:     []string{"ex1", "ex2"},
	}, entry.Definitions[0])
	assert.Equal(t, []string{}, entry.Definitions[1].Examples)
	assert.Equal(t, domain.Definition{
		PartOfSpeech: "adjective",
		Meanings:     []string{},
		Examples:     []string{},
	}, entry.Definitions[2])

	assert.Equal(t, []string{"kitty", "puss", "puke", "spew", "retch"}, entry.Synonyms)
}

func TestBuildEntry_SynonymsBoundedAndUnique(t *testing.T) {
	t.Parallel()

	var senses []provider.SenseResult
	for i := 0; i < 10; i++ {
		senses = append(senses, provider.SenseResult{Text: "x", Synonyms: []string{"a", "b", "a", "c", "d", "b", "e", "f", "g"}})
	}
	entry := buildEntry("x", &provider.DictionaryResult{Entries: []provider.EntryResult{{Senses: senses}}}, DefaultURLs())

	assert.LessOrEqual(t, len(entry.Synonyms), domain.MaxSynonyms)
	seen := map[string]bool{}
	for _, s := range entry.Synonyms {
		assert.False(t, seen[s], "duplicate synonym %q", s)
		seen[s] = true
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, entry.Synonyms)
}

func TestBuildEntry_EmptyIsNoData(t *testing.T) {
	t.Parallel()

	entry := buildEntry("cat", &provider.DictionaryResult{
		Transcription: strPtr(""),
		Entries:       []provider.EntryResult{},
	}, DefaultURLs())

	assert.Nil(t, entry.IPA)
	assert.Nil(t, entry.Definitions)
	assert.Nil(t, entry.Synonyms)
	assert.False(t, domain.HasData(entry))
}
