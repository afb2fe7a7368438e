package lookup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

type mockRunner struct {
	RunFunc func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult
	calls   atomic.Int32
}

func (m *mockRunner) Run(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
	m.calls.Add(1)
	return m.RunFunc(ctx, req)
}

// blockingRunner returns a runner that waits for release before answering.
func blockingRunner(release <-chan struct{}) *mockRunner {
	return &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		<-release
		return &domain.LookupResult{ResultText: "translated:" + req.Text, Percentage: 1}
	}}
}

func instantRunner() *mockRunner {
	return &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		return &domain.LookupResult{ResultText: req.Text, Percentage: 1}
	}}
}

var catRequest = domain.LookupRequest{Text: "cat", SourceLang: "auto", TargetLang: "fr", NeedPhonetic: true}

func TestCoalescer_ConcurrentIdenticalRequestsRunOnce(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	runner := blockingRunner(release)
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	const callers = 20
	results := make([]*domain.LookupResult, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Lookup(context.Background(), catRequest)
			assert.NoError(t, err)
			results[i] = res
		}()
	}

	require.Eventually(t, func() bool { return c.Pending() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), runner.calls.Load())
	require.NotNil(t, results[0])
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestCoalescer_DistinctKeysRunSeparately(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	phonetic := catRequest
	phonetic.PhoneticOnly = true
	noPhonetic := catRequest
	noPhonetic.NeedPhonetic = false

	for _, req := range []domain.LookupRequest{catRequest, phonetic, noPhonetic} {
		_, err := c.Lookup(context.Background(), req)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), runner.calls.Load())
	assert.Equal(t, 3, c.Pending())
}

func TestCoalescer_SecondCallTenMillisecondsLater(t *testing.T) {
	t.Parallel()

	var upstream atomic.Int32
	tr := &mockTranslator{TranslateFunc: func(ctx context.Context, _, _, _ string) (*provider.TranslateResult, error) {
		upstream.Add(1)
		time.Sleep(50 * time.Millisecond)
		return &provider.TranslateResult{Text: "chat", SourceLanguage: "en"}, nil
	}}
	exec := newTestExecutor(tr, okDictionary(nil))
	c := NewCoalescer(newTestLogger(), exec, time.Second)
	defer c.Close()

	require.Equal(t, "cat-auto-fr-true-full", catRequest.Key())

	first := make(chan *domain.LookupResult, 1)
	go func() {
		res, _ := c.Lookup(context.Background(), catRequest)
		first <- res
	}()

	time.Sleep(10 * time.Millisecond)
	second, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	assert.Same(t, <-first, second)
	assert.Equal(t, int32(1), upstream.Load())
}

func TestCoalescer_SettledResultSharedWithinGrace(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	first, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	second, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestCoalescer_FreshLookupAfterGrace(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, DefaultGracePeriod)
	defer c.Close()

	first, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, 0, c.Pending())

	second, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestCoalescer_ShortGraceEvicts(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, 10*time.Millisecond)
	defer c.Close()

	_, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return c.Pending() == 0 }, time.Second, 5*time.Millisecond)

	_, err = c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestCoalescer_ErrorResultIsShared(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	runner := &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		<-release
		return domain.NewErrorResult("boom")
	}}
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	out := make(chan *domain.LookupResult, 2)
	for range 2 {
		go func() {
			res, _ := c.Lookup(context.Background(), catRequest)
			out <- res
		}()
	}
	require.Eventually(t, func() bool { return c.Pending() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)

	a, b := <-out, <-out
	assert.Same(t, a, b)
	assert.True(t, a.IsError)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestCoalescer_CallerCancelDoesNotCancelSharedRun(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var runCtxErr atomic.Value
	runner := &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		<-release
		if err := ctx.Err(); err != nil {
			runCtxErr.Store(err)
		}
		return &domain.LookupResult{ResultText: "ok"}
	}}
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Lookup(ctx, catRequest)
		errCh <- err
	}()
	require.Eventually(t, func() bool { return c.Pending() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.True(t, errors.Is(<-errCh, context.Canceled))

	done := make(chan *domain.LookupResult, 1)
	go func() {
		res, _ := c.Lookup(context.Background(), catRequest)
		done <- res
	}()
	time.Sleep(10 * time.Millisecond)
	close(release)

	res := <-done
	require.NotNil(t, res)
	assert.Equal(t, "ok", res.ResultText)
	assert.Nil(t, runCtxErr.Load())
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestCoalescer_PanicBecomesErrorResult(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		panic("kaboom")
	}}
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	res, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.ErrorMessage, "kaboom")
}

func TestCoalescer_Close(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, time.Minute)

	_, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Pending())

	c.Close()
	assert.Equal(t, 0, c.Pending())

	first, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)
	second, err := c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, int32(3), runner.calls.Load())
}

func TestCoalescer_KeyUsesNormalizedRequest(t *testing.T) {
	t.Parallel()

	runner := instantRunner()
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	_, err := c.Lookup(context.Background(), domain.LookupRequest{Text: " cat ", TargetLang: "fr", NeedPhonetic: true})
	require.NoError(t, err)
	_, err = c.Lookup(context.Background(), catRequest)
	require.NoError(t, err)

	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestCoalescer_WordDetails(t *testing.T) {
	t.Parallel()

	var got domain.LookupRequest
	runner := &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		got = req
		return &domain.LookupResult{
			Percentage:      1,
			DictionaryEntry: &domain.DictionaryEntry{IPA: strPtr("kæt"), Word: "cat"},
		}
	}}
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	entry, err := c.WordDetails(context.Background(), "cat")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "kæt", *entry.IPA)
	assert.True(t, got.PhoneticOnly)
	assert.Equal(t, "cat", got.Text)
}

func TestCoalescer_WordDetails_ErrorResult(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{RunFunc: func(ctx context.Context, req domain.LookupRequest) *domain.LookupResult {
		return domain.NewErrorResult("validation: text: required")
	}}
	c := NewCoalescer(newTestLogger(), runner, time.Second)
	defer c.Close()

	entry, err := c.WordDetails(context.Background(), "")
	assert.Error(t, err)
	assert.Nil(t, entry)
}
