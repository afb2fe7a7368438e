package panel

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
)

// maxStaticWordLen bounds words that static pronunciation sites are tried for.
const maxStaticWordLen = 10

var simpleWord = regexp.MustCompile(`^[a-z]+$`)

// Prober checks that a URL serves playable audio.
type Prober interface {
	Probe(ctx context.Context, rawURL string) error
}

// AudioSource is one playable pronunciation candidate.
type AudioSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ReferenceLinks are shown when nothing could be played.
type ReferenceLinks struct {
	Forvo      string `json:"forvo"`
	Dictionary string `json:"dictionary"`
	Cambridge  string `json:"cambridge"`
}

// AudioOutcome is the result of walking the fallback chain.
// Exactly one of Source and Links is set, unless there was nothing to try.
type AudioOutcome struct {
	Source   *AudioSource    `json:"source"`
	Attempts []string        `json:"attempts"`
	Links    *ReferenceLinks `json:"links"`
}

// StaticAudioURLs holds the bases of the static pronunciation sites.
type StaticAudioURLs struct {
	Howjsay string
	Oxford  string
	Gstatic string
}

// DefaultStaticAudioURLs returns the public pronunciation sites.
func DefaultStaticAudioURLs() StaticAudioURLs {
	return StaticAudioURLs{
		Howjsay: "https://howjsay.com/mp3",
		Oxford:  "https://audio.oxforddictionaries.com/en/mp3",
		Gstatic: "https://ssl.gstatic.com/dictionary/static/sounds/oxford",
	}
}

// AudioChain tries pronunciation sources in order until one plays.
type AudioChain struct {
	log    *slog.Logger
	prober Prober
	urls   StaticAudioURLs
}

// NewAudioChain creates an AudioChain. Empty urls fields fall back to the defaults.
func NewAudioChain(logger *slog.Logger, prober Prober, urls StaticAudioURLs) *AudioChain {
	d := DefaultStaticAudioURLs()
	if urls.Howjsay == "" {
		urls.Howjsay = d.Howjsay
	}
	if urls.Oxford == "" {
		urls.Oxford = d.Oxford
	}
	if urls.Gstatic == "" {
		urls.Gstatic = d.Gstatic
	}
	return &AudioChain{
		log:    logger.With("service", "audio"),
		prober: prober,
		urls:   urls,
	}
}

// Sources lists the candidates for entry: primary TTS, backup TTS, then the
// static sites for short plain words only.
func (a *AudioChain) Sources(entry *domain.DictionaryEntry) []AudioSource {
	if entry == nil {
		return nil
	}

	var out []AudioSource
	if entry.TTS != "" {
		out = append(out, AudioSource{Name: "tts", URL: entry.TTS})
	}
	if entry.BackupTTS != "" {
		out = append(out, AudioSource{Name: "backupTts", URL: entry.BackupTTS})
	}

	word := strings.ToLower(entry.Word)
	if len(word) < maxStaticWordLen && simpleWord.MatchString(word) {
		w := url.PathEscape(word)
		out = append(out,
			AudioSource{Name: "howjsay", URL: strings.TrimRight(a.urls.Howjsay, "/") + "/" + w + ".mp3"},
			AudioSource{Name: "oxford", URL: strings.TrimRight(a.urls.Oxford, "/") + "/" + w + "_us_1.mp3"},
			AudioSource{Name: "gstatic", URL: strings.TrimRight(a.urls.Gstatic, "/") + "/" + w + "--_us_1.mp3"},
		)
	}
	return out
}

// Resolve probes the sources in order and returns the first that plays, or the
// reference links when all fail. A cancelled ctx stops the walk.
func (a *AudioChain) Resolve(ctx context.Context, entry *domain.DictionaryEntry) AudioOutcome {
	out := AudioOutcome{Attempts: []string{}}
	sources := a.Sources(entry)
	if len(sources) == 0 {
		return out
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		out.Attempts = append(out.Attempts, src.Name)
		if err := a.prober.Probe(ctx, src.URL); err != nil {
			a.log.DebugContext(ctx, "audio source failed",
				slog.String("source", src.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		s := src
		out.Source = &s
		return out
	}

	a.log.InfoContext(ctx, "no playable audio", slog.String("word", entry.Word), slog.Int("attempts", len(out.Attempts)))
	out.Links = &ReferenceLinks{
		Forvo:      entry.ForvoURL,
		Dictionary: entry.DictTTSURL,
		Cambridge:  entry.CambridgeTTSURL,
	}
	return out
}
