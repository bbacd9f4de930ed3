// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout pipeline, the caches and the HTTP server emit events through the
// hook interfaces below. Nothing is recorded by default; a binary registers
// implementations at startup, for example the [LogHooks] that ship with this
// package:
//
//	observability.Register(observability.NewLogHooks(logger))
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, totalSeats, len(groups))
//	// ... compute ...
//	observability.Pipeline().OnLayoutComplete(ctx, totalSeats, len(rows), duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the layout pipeline. A layout spans
// row planning, seat placement and partitioning; rows is zero when the
// layout failed.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, totalSeats, groups int)
	OnLayoutComplete(ctx context.Context, totalSeats, rows int, duration time.Duration, err error)
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "chart" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives HTTP API traffic.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnExportStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnExportComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// hookSet is replaced as a whole on every change, so emitters read it
// without locking.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

var current atomic.Pointer[hookSet]

func init() { Reset() }

// update applies f to a copy of the current set and publishes the copy.
func update(f func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		f(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	p, isPipeline := h.(PipelineHooks)
	c, isCache := h.(CacheHooks)
	s, isServer := h.(ServerHooks)
	update(func(set *hookSet) {
		if isPipeline {
			set.pipeline = p
		}
		if isCache {
			set.cache = c
		}
		if isServer {
			set.server = s
		}
	})
	return isPipeline || isCache || isServer
}

// SetPipelineHooks installs pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(set *hookSet) { set.pipeline = h })
	}
}

// SetCacheHooks installs cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(set *hookSet) { set.cache = h })
	}
}

// SetServerHooks installs server hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(set *hookSet) { set.server = h })
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// Server returns the installed server hooks.
func Server() ServerHooks { return current.Load().server }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	current.Store(&hookSet{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		server:   NoopServerHooks{},
	})
}
