package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements all
// three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, vertices, edges int) {
	h.Logger.Debug("analyze start", "vertices", vertices, "edges", edges)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, vertices int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("analyze failed", "vertices", vertices, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("analyze done", "vertices", vertices, "duration", d)
}

func (h *LogHooks) OnOrderComplete(_ context.Context, orderer string, cost int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("order failed", "orderer", orderer, "err", err)
		return
	}
	h.Logger.Debug("order done", "orderer", orderer, "cost", cost, "duration", d)
}

func (h *LogHooks) OnBoundComplete(_ context.Context, bound string, value int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("bound failed", "bound", bound, "err", err)
		return
	}
	h.Logger.Debug("bound done", "bound", bound, "value", value, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
