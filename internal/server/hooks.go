package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks writes observability events as debug lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLayoutStart(_ context.Context, w, ht float64, items int) {
	h.logger.Debug("layout start", "width", w, "height", ht, "items", items)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, cols, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("layout done", "columns", cols, "rows", rows, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(context.Context, string, string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	if status >= 500 {
		h.logger.Warn("server error", "method", method, "path", path, "status", status)
	}
}
