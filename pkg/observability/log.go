package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// OnSequenceStart logs the start of a sequencer run.
func (h *LogHooks) OnSequenceStart(_ context.Context, photos int) {
	h.logger.Debug("sequence start", "photos", photos)
}

// OnSequenceComplete logs the end of a sequencer run.
func (h *LogHooks) OnSequenceComplete(_ context.Context, photos int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("sequence failed", "photos", photos, "duration", d, "err", err)
		return
	}
	h.logger.Debug("sequence done", "photos", photos, "duration", d)
}

// OnScoreStart logs the start of validation and scoring.
func (h *LogHooks) OnScoreStart(_ context.Context, slides int) {
	h.logger.Debug("score start", "slides", slides)
}

// OnScoreComplete logs the score.
func (h *LogHooks) OnScoreComplete(_ context.Context, slides, score int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("score failed", "slides", slides, "err", err)
		return
	}
	h.logger.Debug("score done", "slides", slides, "score", score, "duration", d)
}

// OnCacheHit logs a cache hit.
func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

// OnCacheMiss logs a cache miss.
func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

// OnCacheSet logs a cache write.
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// OnRequest logs an incoming request.
func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

// OnResponse logs a completed response.
func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

// OnError logs a failed request.
func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Warn("request failed", "method", method, "route", route, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
