package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/pkg/ctxutil"
)

// DefaultGracePeriod is how long a settled lookup keeps answering identical requests.
const DefaultGracePeriod = time.Second

type runner interface {
	Run(ctx context.Context, req domain.LookupRequest) *domain.LookupResult
}

// call is one shared lookup. result is written once, before done is closed.
type call struct {
	done   chan struct{}
	result *domain.LookupResult
	timer  *time.Timer
}

// Coalescer shares one executor run between identical concurrent requests.
// An entry lives until GracePeriod after its run settles; there is no other expiry
// and no bound on the number of entries.
type Coalescer struct {
	log   *slog.Logger
	exec  runner
	grace time.Duration

	mu     sync.Mutex
	calls  map[string]*call
	closed bool
}

// NewCoalescer creates a Coalescer. A negative grace is treated as zero.
func NewCoalescer(logger *slog.Logger, exec runner, grace time.Duration) *Coalescer {
	if grace < 0 {
		grace = 0
	}
	return &Coalescer{
		log:   logger.With("service", "coalescer"),
		exec:  exec,
		grace: grace,
		calls: make(map[string]*call),
	}
}

// Lookup returns the result for req, joining an existing run for the same key if any.
// All callers of one run receive the same *LookupResult. The run itself is never
// cancelled; ctx only bounds how long this caller waits.
func (c *Coalescer) Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
	req = req.Normalize()
	key := req.Key()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.exec.Run(ctx, req), nil
	}
	if cl, ok := c.calls[key]; ok {
		c.mu.Unlock()
		c.log.DebugContext(ctx, "lookup coalesced", slog.String("key", key), ctxutil.RequestIDAttr(ctx))
		return wait(ctx, cl)
	}
	cl := &call{done: make(chan struct{})}
	c.calls[key] = cl
	c.mu.Unlock()

	go c.run(context.WithoutCancel(ctx), key, req, cl)

	return wait(ctx, cl)
}

func wait(ctx context.Context, cl *call) (*domain.LookupResult, error) {
	select {
	case <-cl.done:
		return cl.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Coalescer) run(ctx context.Context, key string, req domain.LookupRequest, cl *call) {
	defer func() {
		if r := recover(); r != nil {
			c.log.ErrorContext(ctx, "lookup panicked",
				slog.String("key", key),
				slog.Any("panic", r),
				ctxutil.RequestIDAttr(ctx),
			)
			cl.result = domain.NewErrorResult(fmt.Sprintf("internal error: %v", r))
		}
		close(cl.done)
		c.scheduleEviction(key, cl)
	}()

	cl.result = c.exec.Run(ctx, req)
}

func (c *Coalescer) scheduleEviction(key string, cl *call) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.calls[key] != cl {
		return
	}
	cl.timer = time.AfterFunc(c.grace, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.calls[key] == cl {
			delete(c.calls, key)
		}
	})
}

// Pending returns the number of registered entries, in flight or within their grace period.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// Close stops eviction timers and drops all entries. Callers already waiting still
// get their result; later lookups run the executor directly.
func (c *Coalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for key, cl := range c.calls {
		if cl.timer != nil {
			cl.timer.Stop()
		}
		delete(c.calls, key)
	}
}

// WordDetails runs a phonetic-only lookup for word and returns its dictionary
// entry, or nil when the dictionary has nothing.
func (c *Coalescer) WordDetails(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	res, err := c.Lookup(ctx, domain.LookupRequest{Text: word, PhoneticOnly: true})
	if err != nil {
		return nil, err
	}
	if res.IsError {
		return nil, errors.New(res.ErrorMessage)
	}
	return res.Dictionary(), nil
}
