package panel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
)

type mockProber struct {
	ProbeFunc func(ctx context.Context, rawURL string) error
	probed    []string
}

func (m *mockProber) Probe(ctx context.Context, rawURL string) error {
	m.probed = append(m.probed, rawURL)
	return m.ProbeFunc(ctx, rawURL)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullEntry(word string) *domain.DictionaryEntry {
	return &domain.DictionaryEntry{
		TTS:             "https://tts.example/" + word,
		BackupTTS:       "https://backup.example/" + word + ".mp3",
		ForvoURL:        "https://forvo.com/word/" + word + "/",
		DictTTSURL:      "https://www.dictionary.com/browse/sound/" + word,
		CambridgeTTSURL: "https://dictionary.cambridge.org/pronunciation/english/" + word,
		Word:            word,
	}
}

func failAll(ctx context.Context, rawURL string) error { return errors.New("404") }

func TestAudioChain_Sources_ShortWord(t *testing.T) {
	t.Parallel()

	chain := NewAudioChain(newTestLogger(), &mockProber{}, StaticAudioURLs{})
	got := chain.Sources(fullEntry("cat"))

	require.Len(t, got, 5)
	names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name, got[4].Name}
	assert.Equal(t, []string{"tts", "backupTts", "howjsay", "oxford", "gstatic"}, names)
	assert.Equal(t, "https://howjsay.com/mp3/cat.mp3", got[2].URL)
	assert.Equal(t, "https://audio.oxforddictionaries.com/en/mp3/cat_us_1.mp3", got[3].URL)
	assert.Equal(t, "https://ssl.gstatic.com/dictionary/static/sounds/oxford/cat--_us_1.mp3", got[4].URL)
}

func TestAudioChain_Sources_StaticOnlyForShortPlainWords(t *testing.T) {
	t.Parallel()

	chain := NewAudioChain(newTestLogger(), &mockProber{}, StaticAudioURLs{})

	assert.Len(t, chain.Sources(fullEntry("extraordinary")), 2, "10+ letters skip static sites")
	assert.Len(t, chain.Sources(fullEntry("mp3")), 2, "digits skip static sites")
	assert.Len(t, chain.Sources(fullEntry("")), 2)
	assert.Len(t, chain.Sources(fullEntry("abcdefghi")), 5, "nine letters still qualify")
	assert.Nil(t, chain.Sources(nil))
}

func TestAudioChain_Resolve_FirstSuccessWins(t *testing.T) {
	t.Parallel()

	prober := &mockProber{ProbeFunc: func(ctx context.Context, rawURL string) error {
		if rawURL == "https://backup.example/cat.mp3" {
			return nil
		}
		return errors.New("blocked")
	}}
	chain := NewAudioChain(newTestLogger(), prober, StaticAudioURLs{})

	out := chain.Resolve(context.Background(), fullEntry("cat"))

	require.NotNil(t, out.Source)
	assert.Equal(t, "backupTts", out.Source.Name)
	assert.Equal(t, []string{"tts", "backupTts"}, out.Attempts)
	assert.Nil(t, out.Links)
}

func TestAudioChain_Resolve_AllFailShowsLinks(t *testing.T) {
	t.Parallel()

	prober := &mockProber{ProbeFunc: failAll}
	chain := NewAudioChain(newTestLogger(), prober, StaticAudioURLs{})

	out := chain.Resolve(context.Background(), fullEntry("cat"))

	assert.Nil(t, out.Source)
	assert.Equal(t, []string{"tts", "backupTts", "howjsay", "oxford", "gstatic"}, out.Attempts)
	require.NotNil(t, out.Links)
	assert.Equal(t, "https://forvo.com/word/cat/", out.Links.Forvo)
	assert.Equal(t, "https://www.dictionary.com/browse/sound/cat", out.Links.Dictionary)
	assert.Equal(t, "https://dictionary.cambridge.org/pronunciation/english/cat", out.Links.Cambridge)
	assert.Len(t, prober.probed, 5)
}

func TestAudioChain_Resolve_CancelledStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	prober := &mockProber{ProbeFunc: func(context.Context, string) error {
		cancel()
		return context.Canceled
	}}
	chain := NewAudioChain(newTestLogger(), prober, StaticAudioURLs{})

	out := chain.Resolve(ctx, fullEntry("cat"))

	assert.Equal(t, []string{"tts"}, out.Attempts)
	assert.Nil(t, out.Source)
}

func TestAudioChain_Resolve_NothingToTry(t *testing.T) {
	t.Parallel()

	chain := NewAudioChain(newTestLogger(), &mockProber{ProbeFunc: failAll}, StaticAudioURLs{})
	out := chain.Resolve(context.Background(), nil)

	assert.Nil(t, out.Source)
	assert.Nil(t, out.Links)
	assert.Empty(t, out.Attempts)
}

func TestAudioChain_CustomStaticBases(t *testing.T) {
	t.Parallel()

	chain := NewAudioChain(newTestLogger(), &mockProber{}, StaticAudioURLs{Howjsay: "http://localhost:1/h/"})
	got := chain.Sources(&domain.DictionaryEntry{Word: "dog"})

	require.Len(t, got, 3)
	assert.Equal(t, "http://localhost:1/h/dog.mp3", got[0].URL)
}
