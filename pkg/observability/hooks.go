// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional and does not tie the board packages to a
// specific backend. The server registers hook implementations at startup and
// the packages report events through the registry:
//   - BoardHooks: batches applied to a board, undo and redo
//   - TemplateHooks: template generation and reflow
//   - StoreHooks: document loads and saves
//   - HTTPHooks: requests served by the API
//
// Every category defaults to a no-op implementation. The prom subpackage
// implements all of them with Prometheus collectors.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New(prometheus.DefaultRegisterer)
//	    observability.SetBoardHooks(m)
//	    observability.SetStoreHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... apply batch ...
//	observability.Board().OnApply(ctx, boardID, len(batch), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from board mutations.
type BoardHooks interface {
	// OnApply records a committed batch and the number of ops that took effect.
	OnApply(ctx context.Context, boardID string, ops int, duration time.Duration)

	// OnUndo records an undo request. ok is false when there was nothing to undo.
	OnUndo(ctx context.Context, boardID string, ok bool)

	// OnRedo records a redo request. ok is false when there was nothing to redo.
	OnRedo(ctx context.Context, boardID string, ok bool)
}

// =============================================================================
// Template Hooks
// =============================================================================

// TemplateHooks receives events from the template layout engine.
type TemplateHooks interface {
	// OnGenerate records a template generation or row insertion.
	OnGenerate(ctx context.Context, template string, created int, duration time.Duration, err error)

	// OnReflow records a reflow and the number of ops it produced.
	OnReflow(ctx context.Context, template string, ops int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from persistence backends.
type StoreHooks interface {
	// OnLoad records a document load.
	OnLoad(ctx context.Context, backend string, duration time.Duration, err error)

	// OnSave records a document save of size layers.
	OnSave(ctx context.Context, backend string, size int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnApply(context.Context, string, int, time.Duration) {}
func (NoopBoardHooks) OnUndo(context.Context, string, bool)                {}
func (NoopBoardHooks) OnRedo(context.Context, string, bool)                {}

// NoopTemplateHooks is a no-op implementation of TemplateHooks.
type NoopTemplateHooks struct{}

func (NoopTemplateHooks) OnGenerate(context.Context, string, int, time.Duration, error) {}
func (NoopTemplateHooks) OnReflow(context.Context, string, int, time.Duration, error)   {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, time.Duration, error)      {}
func (NoopStoreHooks) OnSave(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	boardHooks    BoardHooks    = NoopBoardHooks{}
	templateHooks TemplateHooks = NoopTemplateHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetBoardHooks registers custom board hooks.
// This should be called once at application startup before any board is opened.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetTemplateHooks registers custom template hooks.
func SetTemplateHooks(h TemplateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		templateHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// Template returns the registered template hooks.
func Template() TemplateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return templateHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	boardHooks = NoopBoardHooks{}
	templateHooks = NoopTemplateHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
