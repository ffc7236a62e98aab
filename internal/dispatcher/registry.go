package dispatcher

import (
	"sort"
	"sync"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

// Handler processes one command dispatch. It reports true when it
// handled the command and false to decline, letting the next handler in
// the chain (or default platform behavior upstream) take over.
type Handler func(cmd command.Command, ctx *execctx.Context) bool

type entry struct {
	id       uint64
	priority int
	seq      uint64
	h        Handler
}

// Registry manages handler registration by command name. Handlers for
// the same name are ordered by descending priority, registration order
// on ties.
type Registry struct {
	mu      sync.RWMutex
	entries map[command.Name][]entry
	nextID  uint64
	nextSeq uint64
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[command.Name][]entry)}
}

// Register adds a handler for a command name and returns a token that
// removes exactly that handler. Calling the token more than once is a
// no-op.
func (r *Registry) Register(name command.Name, priority int, h Handler) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.nextSeq++
	e := entry{id: r.nextID, priority: priority, seq: r.nextSeq, h: h}

	entries := append(r.entries[name], e)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].seq < entries[j].seq
	})
	r.entries[name] = entries

	id := e.id
	return func() { r.unregister(name, id) }
}

func (r *Registry) unregister(name command.Name, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.entries[name]
	for i, e := range entries {
		if e.id == id {
			r.entries[name] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Handlers returns the handler chain for a command name in dispatch
// order.
func (r *Registry) Handlers(name command.Name) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.entries[name]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Handler, len(entries))
	for i, e := range entries {
		out[i] = e.h
	}
	return out
}

// Has reports whether any handler is registered for the command name.
func (r *Registry) Has(name command.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[name]) > 0
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []command.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]command.Name, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[command.Name][]entry)
}
