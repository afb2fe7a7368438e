package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

// TranslationProvider translates text, reporting the detected source language when it can.
type TranslationProvider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*provider.TranslateResult, error)
}

// DictionaryProvider fetches dictionary data for a single word. A nil result means no data.
type DictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type settingsReader interface {
	TargetLang() string
	TranslationAPI() string
	DictionaryProvider() string
}

// Executor runs one lookup: translation, then dictionary data for single words.
// Providers are picked by name from the settings on every run.
type Executor struct {
	log          *slog.Logger
	settings     settingsReader
	translators  map[string]TranslationProvider
	dictionaries map[string]DictionaryProvider
	urls         URLs
}

// NewExecutor creates an Executor.
func NewExecutor(
	logger *slog.Logger,
	settings settingsReader,
	translators map[string]TranslationProvider,
	dictionaries map[string]DictionaryProvider,
	urls URLs,
) *Executor {
	return &Executor{
		log:          logger.With("service", "lookup"),
		settings:     settings,
		translators:  translators,
		dictionaries: dictionaries,
		urls:         urls.withDefaults(),
	}
}

// Run executes the lookup. It never fails: a translation failure, or a request
// that cannot run at all, yields an error result.
func (e *Executor) Run(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
	req = req.Normalize()
	if req.TargetLang == "" {
		req.TargetLang = e.settings.TargetLang()
	}
	if err := req.Validate(); err != nil {
		return domain.NewErrorResult(err.Error())
	}

	var result *domain.LookupResult
	if req.PhoneticOnly {
		result = &domain.LookupResult{SourceLanguage: req.SourceLang, Percentage: 1}
	} else {
		tr, err := e.translate(ctx, req)
		if err != nil {
			e.log.ErrorContext(ctx, "translation failed",
				slog.String("target", req.TargetLang),
				slog.String("error", err.Error()),
			)
			return domain.NewErrorResult(err.Error())
		}
		result = translationResult(tr, req)
	}

	if req.WantsDictionary() && domain.IsSingleWord(req.Text) {
		result.DictionaryEntry = e.dictionary(ctx, req.Text)
	}

	return result
}

func (e *Executor) translate(ctx context.Context, req domain.LookupRequest) (*provider.TranslateResult, error) {
	name := e.settings.TranslationAPI()
	t, ok := e.translators[name]
	if !ok {
		return nil, fmt.Errorf("unknown translation api %q", name)
	}
	return t.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
}

// dictionary returns a normalized entry, or nil when there is nothing worth attaching.
// Every failure here is absorbed.
func (e *Executor) dictionary(ctx context.Context, text string) *domain.DictionaryEntry {
	name := e.settings.DictionaryProvider()
	d, ok := e.dictionaries[name]
	if !ok {
		e.log.WarnContext(ctx, "unknown dictionary provider", slog.String("provider", name))
		return nil
	}

	res, err := d.FetchEntry(ctx, strings.TrimSpace(text))
	if errors.Is(err, provider.ErrNotConfigured) {
		e.log.DebugContext(ctx, "dictionary not configured", slog.String("provider", name))
		return nil
	}
	if err != nil {
		e.log.WarnContext(ctx, "dictionary lookup failed",
			slog.String("provider", name),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if res == nil {
		return nil
	}

	entry := buildEntry(text, res, e.urls)
	if !domain.HasData(entry) {
		return nil
	}
	return entry
}

func translationResult(tr *provider.TranslateResult, req domain.LookupRequest) *domain.LookupResult {
	source := tr.SourceLanguage
	if source == "" {
		source = req.SourceLang
	}

	// Any successful translation counts as confident, even an empty one.
	return &domain.LookupResult{
		ResultText:     tr.Text,
		SourceLanguage: source,
		Percentage:     1,
		CandidateText:  formatCandidates(tr.Candidates),
	}
}

// formatCandidates renders one "<pos>: w1, w2" line per group, joined by newline.
func formatCandidates(groups []provider.CandidateGroup) string {
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, g.PartOfSpeech+": "+strings.Join(g.Words, ", "))
	}
	return strings.Join(lines, "\n")
}
