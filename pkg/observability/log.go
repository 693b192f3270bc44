package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and HTTP events as debug log lines.
// It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnBuildStart(_ context.Context, nodeCount, linkCount int) {
	h.logger.Debug("build started", "nodes", nodeCount, "links", linkCount)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, nodeCount, dropped int, d time.Duration, err error) {
	h.done("build", d, err, "nodes", nodeCount, "dropped", dropped)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, engine string, nodeCount int) {
	h.logger.Debug("layout started", "engine", engine, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	h.done("layout", d, err, "engine", engine)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "elapsed", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
