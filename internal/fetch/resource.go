// Package fetch tracks the loading/error/data state of one GET endpoint whose URL
// may change over time. Every URL change starts a new generation; results that
// arrive for an older generation are dropped and their requests cancelled.
package fetch

import (
	"context"
	"sync"

	"github.com/Varun5711/wecare/internal/api"
)

type Getter[T any] func(ctx context.Context, url string) (T, error)

// Ticket identifies one issued request.
type Ticket struct {
	Gen uint64
	URL string
	Ctx context.Context
}

type Result[T any] struct {
	Ticket Ticket
	Data   T
	Err    error
}

type State[T any] struct {
	URL     string
	Data    T
	Loading bool
	Err     string
}

type Resource[T any] struct {
	mu      sync.Mutex
	get     Getter[T]
	url     string
	gen     uint64
	cancel  context.CancelFunc
	data    T
	loading bool
	err     string
}

func New[T any](get func(ctx context.Context, url string) (T, error)) *Resource[T] {
	return &Resource[T]{get: get}
}

// FromClient builds a resource that GETs through c and unwraps {"data": ...}.
func FromClient[T any](c *api.Client) *Resource[T] {
	return New(func(ctx context.Context, url string) (T, error) {
		return api.GetData[T](ctx, c, url)
	})
}

// SetURL switches the resource to url. It reports a ticket to run when a request
// must be issued: the URL changed and is non-empty. An empty URL makes the
// resource idle and clears its data.
func (r *Resource[T]) SetURL(url string) (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if url == r.url {
		return Ticket{}, false
	}
	r.url = url

	if url == "" {
		r.supersedeLocked()
		var zero T
		r.data = zero
		r.loading = false
		r.err = ""
		return Ticket{}, false
	}

	return r.beginLocked(), true
}

// Refetch reissues the request for the current URL.
func (r *Resource[T]) Refetch() (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.url == "" {
		return Ticket{}, false
	}
	return r.beginLocked(), true
}

func (r *Resource[T]) beginLocked() Ticket {
	r.supersedeLocked()

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.loading = true
	r.err = ""

	return Ticket{Gen: r.gen, URL: r.url, Ctx: ctx}
}

func (r *Resource[T]) supersedeLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}

// Run performs the request for t. It touches no resource state and is safe to
// call from any goroutine.
func (r *Resource[T]) Run(t Ticket) Result[T] {
	data, err := r.get(t.Ctx, t.URL)
	return Result[T]{Ticket: t, Data: data, Err: err}
}

// Apply stores res if it belongs to the latest generation and reports whether it did.
func (r *Resource[T]) Apply(res Result[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Ticket.Gen != r.gen {
		return false
	}

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.loading = false
	if res.Err != nil {
		r.err = api.Message(res.Err)
		return true
	}
	r.data = res.Data
	r.err = ""
	return true
}

// Load runs t synchronously and applies the result.
func (r *Resource[T]) Load(t Ticket) bool {
	return r.Apply(r.Run(t))
}

func (r *Resource[T]) SetData(data T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
}

func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State[T]{URL: r.url, Data: r.data, Loading: r.loading, Err: r.err}
}

func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Resource[T]) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Resource[T]) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url
}
