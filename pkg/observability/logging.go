package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level; failures are
// logged at warn.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l with an "event" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("event")}
}

func (h *LogHooks) result(msg string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Warn(msg, append(keyvals, "err", err)...)
		return
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *LogHooks) OnPrepare(mode string, itemCount int, d time.Duration) {
	h.logger.Debug("layout prepared", "mode", mode, "items", itemCount, "took", d)
}

func (h *LogHooks) OnInvalidate(mode string) {
	h.logger.Debug("layout invalidated", "mode", mode)
}

func (h *LogHooks) OnBegin(from, to string) {
	h.logger.Debug("transition begin", "from", from, "to", to)
}

func (h *LogHooks) OnFinish(from, to string, progress float64) {
	h.logger.Debug("transition finish", "from", from, "to", to, "progress", progress)
}

func (h *LogHooks) OnCancel(from, to string, progress float64) {
	h.logger.Debug("transition cancel", "from", from, "to", to, "progress", progress)
}

func (h *LogHooks) OnSceneLoad(_ context.Context, name string, itemCount int, d time.Duration, err error) {
	h.result("scene loaded", err, "scene", name, "items", itemCount, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, itemCount int) {
	h.logger.Debug("layout start", "mode", mode, "items", itemCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	h.result("layout complete", err, "mode", mode, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.result("render complete", err, "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Warn("request error", "method", method, "route", route, "err", err)
}

var (
	_ LayoutHooks     = (*LogHooks)(nil)
	_ TransitionHooks = (*LogHooks)(nil)
	_ PipelineHooks   = (*LogHooks)(nil)
	_ CacheHooks      = (*LogHooks)(nil)
	_ HTTPHooks       = (*LogHooks)(nil)
)
