package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level.
// Failed layouts and exports are logged at error level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. A nil logger uses the
// package-level default from charmbracelet/log.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, totalSeats, groups int) {
	h.logger.Debug("layout started", "seats", totalSeats, "groups", groups)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, totalSeats, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "seats", totalSeats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout complete", "seats", totalSeats, "rows", rows, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export started", "formats", formats)
}

func (h *LogHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("export failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("export complete", "formats", formats, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
