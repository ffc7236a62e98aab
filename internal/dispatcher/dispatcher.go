// Package dispatcher routes editing commands to handlers and coordinates
// execution.
package dispatcher

import (
	"sync"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/theme"
)

// Config holds dispatcher configuration.
type Config struct {
	// MaxDispatchDepth bounds re-entrant dispatch. Handlers re-dispatch
	// other commands (tab to indent, backspace to deleteCharacter); the
	// command graph has no cycles by construction, but the guard stops
	// an accidental one. A dispatch past the bound returns false.
	MaxDispatchDepth int

	// RecoverFromPanic converts a handler panic into a declined
	// dispatch instead of unwinding through the caller.
	RecoverFromPanic bool
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		MaxDispatchDepth: 16,
		RecoverFromPanic: true,
	}
}

// Dispatcher routes commands to handlers in priority order, stopping at
// the first handler that reports handled.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config

	// Editor collaborators wired by the host.
	document       execctx.Document
	theme          *theme.Theme
	blur           func()
	insertTransfer func(*execctx.Context, command.DataTransfer) bool
	serializeSel   func(*execctx.Context) (command.DataTransfer, bool)

	// depth tracks nested dispatch. Dispatch is synchronous and
	// single-threaded per the model's update contract; the counter is
	// only read under mu for consistency with the rest of the state.
	depth int
}

// New creates a dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	if config.MaxDispatchDepth <= 0 {
		config.MaxDispatchDepth = DefaultConfig().MaxDispatchDepth
	}
	return &Dispatcher{
		registry: NewRegistry(),
		config:   config,
	}
}

// NewWithDefaults creates a dispatcher with the default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetDocument wires the active document handle.
func (d *Dispatcher) SetDocument(doc execctx.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.document = doc
}

// SetTheme wires the active theme.
func (d *Dispatcher) SetTheme(th *theme.Theme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.theme = th
}

// SetBlur wires the focus-release hook.
func (d *Dispatcher) SetBlur(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blur = fn
}

// SetInsertTransfer wires the external transfer-data insertion function.
func (d *Dispatcher) SetInsertTransfer(fn func(*execctx.Context, command.DataTransfer) bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.insertTransfer = fn
}

// SetSerializeSelection wires the external selection serializer.
func (d *Dispatcher) SetSerializeSelection(fn func(*execctx.Context) (command.DataTransfer, bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serializeSel = fn
}

// Theme returns the wired theme.
func (d *Dispatcher) Theme() *theme.Theme {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.theme
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Register adds a handler for a command name and returns its unregister
// token.
func (d *Dispatcher) Register(name command.Name, priority int, h Handler) func() {
	return d.registry.Register(name, priority, h)
}

// Dispatch runs the handler chain for a command name. It returns true
// when a handler reported handled, and false when every handler declined
// or no handler is registered. Dispatching an unregistered command is a
// silent no-op.
func (d *Dispatcher) Dispatch(name command.Name, p command.Payload) bool {
	d.mu.Lock()
	if d.depth >= d.config.MaxDispatchDepth {
		d.mu.Unlock()
		return false
	}
	d.depth++
	outermost := d.depth == 1
	doc := d.document
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.depth--
		d.mu.Unlock()
	}()

	cmd := command.Command{Name: name, Payload: p}
	ctx := d.buildContext()

	// The outermost dispatch of a chain runs as one update transaction;
	// nested re-dispatches join it.
	if outermost && doc != nil {
		var handled bool
		doc.Update(func() {
			handled = d.run(cmd, ctx)
		})
		return handled
	}
	return d.run(cmd, ctx)
}

func (d *Dispatcher) run(cmd command.Command, ctx *execctx.Context) bool {
	for _, h := range d.registry.Handlers(cmd.Name) {
		if d.execute(h, cmd, ctx) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) execute(h Handler, cmd command.Command, ctx *execctx.Context) (handled bool) {
	if d.config.RecoverFromPanic {
		defer func() {
			if recover() != nil {
				handled = false
			}
		}()
	}
	return h(cmd, ctx)
}

// buildContext builds a fresh execution context from the wired
// collaborators.
func (d *Dispatcher) buildContext() *execctx.Context {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return &execctx.Context{
		Document:           d.document,
		Theme:              d.theme,
		Dispatch:           d.Dispatch,
		Blur:               d.blur,
		InsertTransfer:     d.insertTransfer,
		SerializeSelection: d.serializeSel,
	}
}
