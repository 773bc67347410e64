// Package observability provides hooks for metrics and tracing of pipeline
// runs.
//
// Hooks keep the pipeline free of any particular metrics backend. A binary
// registers an implementation once at startup; the pipeline reports every
// stage to whatever is registered, and to a no-op by default.
//
//	func main() {
//	    observability.SetPipelineHooks(&promHooks{})
//	    // ... run application
//	}
//
// The pipeline emits:
//
//	observability.Pipeline().OnGenerateStart(ctx, starCount)
//	// ... sample stars ...
//	observability.Pipeline().OnGenerateComplete(ctx, starCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the starfield pipeline.
// Implementations must be safe for concurrent use.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, stars int)
	OnGenerateComplete(ctx context.Context, stars int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, renderer string, width, height int)
	OnRenderComplete(ctx context.Context, renderer string, duration time.Duration, err error)

	// OnWriteComplete reports a written artifact. size is in bytes, or 0
	// when the write failed.
	OnWriteComplete(ctx context.Context, path string, size int64, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int, int)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)      {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, int64, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
// Call once at startup, before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
