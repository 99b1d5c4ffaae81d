// Package observability lets callers observe shelfview without the library
// depending on a metrics or tracing backend.
//
// There is one hook interface per event source. Each has a no-op default
// and a process-wide registration slot; register replacements at startup:
//
//	observability.SetCacheHooks(myCacheMetrics{})
//
// Layout and transition hooks run synchronously on the goroutine that owns
// the engine and take no context. Pipeline, cache and HTTP hooks follow
// request-scoped work and do. [LogHooks] implements every interface on top
// of a charmbracelet logger.
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks observes layout passes.
type LayoutHooks interface {
	OnPrepare(mode string, itemCount int, duration time.Duration)
	OnInvalidate(mode string)
}

// TransitionHooks observes the layout switch protocol.
type TransitionHooks interface {
	OnBegin(from, to string)
	OnFinish(from, to string, progress float64)
	OnCancel(from, to string, progress float64)
}

// PipelineHooks observes scene loading, layout and rendering in the
// snapshot pipeline. err is nil on success.
type PipelineHooks interface {
	OnSceneLoad(ctx context.Context, name string, itemCount int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, mode string, itemCount int)
	OnLayoutComplete(ctx context.Context, mode string, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes snapshot cache traffic. keyType is "layout" or
// "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes the session API. route is the chi route pattern, not
// the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPrepare(string, int, time.Duration) {}
func (NoopLayoutHooks) OnInvalidate(string)                  {}

type NoopTransitionHooks struct{}

func (NoopTransitionHooks) OnBegin(string, string)           {}
func (NoopTransitionHooks) OnFinish(string, string, float64) {}
func (NoopTransitionHooks) OnCancel(string, string, float64) {}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSceneLoad(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                        {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one registered hook implementation.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

// set ignores nil so a missing implementation never replaces the default
// with a panicking value.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	layoutSlot     = newSlot[LayoutHooks](NoopLayoutHooks{})
	transitionSlot = newSlot[TransitionHooks](NoopTransitionHooks{})
	pipelineSlot   = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot      = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot       = newSlot[HTTPHooks](NoopHTTPHooks{})
)

func SetLayoutHooks(h LayoutHooks)         { layoutSlot.set(h) }
func SetTransitionHooks(h TransitionHooks) { transitionSlot.set(h) }
func SetPipelineHooks(h PipelineHooks)     { pipelineSlot.set(h) }
func SetCacheHooks(h CacheHooks)           { cacheSlot.set(h) }
func SetHTTPHooks(h HTTPHooks)             { httpSlot.set(h) }

// SetAll registers h for every event source.
func SetAll(h *LogHooks) {
	SetLayoutHooks(h)
	SetTransitionHooks(h)
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func Layout() LayoutHooks         { return layoutSlot.get() }
func Transition() TransitionHooks { return transitionSlot.get() }
func Pipeline() PipelineHooks     { return pipelineSlot.get() }
func Cache() CacheHooks           { return cacheSlot.get() }
func HTTP() HTTPHooks             { return httpSlot.get() }

// Reset restores every no-op default.
func Reset() {
	layoutSlot.reset()
	transitionSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
