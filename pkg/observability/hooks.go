// Package observability provides hooks for logging and metrics around hub
// rendering.
//
// The core tree package never imports a logger. Instead it emits events to
// the registered hooks, and the application (the CLI) decides what to do with
// them. The defaults are no-ops, so library users pay nothing unless they
// register their own implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, hub)
//	// ... validate and write files ...
//	observability.Render().OnRenderComplete(ctx, hub, files, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from hub validation and rendering.
type RenderHooks interface {
	// OnRenderStart is called before the tree is validated.
	OnRenderStart(ctx context.Context, hub string)

	// OnValidate is called once the validation pass has finished.
	// nodes is the number of components visited.
	OnValidate(ctx context.Context, hub string, nodes int, err error)

	// OnFileWritten is called after each file is written.
	OnFileWritten(ctx context.Context, path string, size int)

	// OnRenderComplete is called when rendering stops, successfully or not.
	OnRenderComplete(ctx context.Context, hub string, files int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnValidate(context.Context, string, int, error)                      {}
func (NoopRenderHooks) OnFileWritten(context.Context, string, int)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
// A nil value is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
}
