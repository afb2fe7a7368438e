package panel

import (
	"context"
	"strings"
	"sync"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
)

// DetailState is the load state of the dictionary section.
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// WordDetailsFetcher loads dictionary data on demand. A nil entry means no data.
type WordDetailsFetcher interface {
	WordDetails(ctx context.Context, word string) (*domain.DictionaryEntry, error)
}

// DetailView is a snapshot of the dictionary section.
type DetailView struct {
	State    DetailState
	Expanded bool
	// Entry is nil when nothing is loaded or the dictionary had no data.
	Entry *domain.DictionaryEntry
}

// DictDetail drives the dictionary section of one panel. Data is fetched only on
// an explicit Request, never when the panel opens.
type DictDetail struct {
	fetcher WordDetailsFetcher

	mu        sync.Mutex
	word      string
	preloaded *domain.DictionaryEntry
	state     DetailState
	expanded  bool
	entry     *domain.DictionaryEntry
}

func NewDictDetail(fetcher WordDetailsFetcher) *DictDetail {
	return &DictDetail{fetcher: fetcher}
}

// Open resets the section for a newly shown panel. preloaded is the dictionary
// data that came with the translation, if any.
func (d *DictDetail) Open(word string, preloaded *domain.DictionaryEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.word = strings.TrimSpace(word)
	d.preloaded = preloaded
	d.state = DetailIdle
	d.expanded = false
	d.entry = nil
}

// Request loads the dictionary data and expands the section. It reports false
// and does nothing unless the section is idle or failed.
func (d *DictDetail) Request(ctx context.Context) bool {
	d.mu.Lock()
	if d.state != DetailIdle && d.state != DetailFailed {
		d.mu.Unlock()
		return false
	}
	d.state = DetailLoading
	d.entry = nil
	word, preloaded := d.word, d.preloaded

	if domain.HasData(preloaded) {
		d.finish(DetailLoaded, preloaded)
		d.mu.Unlock()
		return true
	}
	if word == "" {
		d.finish(DetailLoaded, nil)
		d.mu.Unlock()
		return true
	}
	d.mu.Unlock()

	entry, err := d.fetcher.WordDetails(ctx, word)

	d.mu.Lock()
	defer d.mu.Unlock()
	// The panel was reopened while loading; drop the stale answer.
	if d.word != word || d.state != DetailLoading {
		return true
	}
	if err != nil {
		d.finish(DetailFailed, nil)
		return true
	}
	if !domain.HasData(entry) {
		entry = nil
	}
	d.finish(DetailLoaded, entry)
	return true
}

// finish must be called with mu held. The section stays expanded even without data.
func (d *DictDetail) finish(state DetailState, entry *domain.DictionaryEntry) {
	d.state = state
	d.entry = entry
	d.expanded = true
}

// Toggle flips the expanded flag and returns the new value.
func (d *DictDetail) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expanded = !d.expanded
	return d.expanded
}

func (d *DictDetail) View() DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DetailView{State: d.state, Expanded: d.expanded, Entry: d.entry}
}
