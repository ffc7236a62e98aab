package dispatcher_test

import (
	"testing"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

func declining(record *[]string, label string) dispatcher.Handler {
	return func(command.Command, *execctx.Context) bool {
		*record = append(*record, label)
		return false
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	registry := dispatcher.NewRegistry()

	var order []string
	registry.Register("test", 0, declining(&order, "low"))
	registry.Register("test", 10, declining(&order, "high"))
	registry.Register("test", 5, declining(&order, "mid"))

	for _, h := range registry.Handlers("test") {
		h(command.Command{Name: "test"}, &execctx.Context{})
	}

	want := []string{"high", "mid", "low"}
	if len(order) != len(want) {
		t.Fatalf("ran %d handlers, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRegistryTieBreakByRegistrationOrder(t *testing.T) {
	registry := dispatcher.NewRegistry()

	var order []string
	registry.Register("test", 3, declining(&order, "first"))
	registry.Register("test", 3, declining(&order, "second"))
	registry.Register("test", 3, declining(&order, "third"))

	for _, h := range registry.Handlers("test") {
		h(command.Command{Name: "test"}, &execctx.Context{})
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	registry := dispatcher.NewRegistry()

	var order []string
	unregisterA := registry.Register("test", 0, declining(&order, "a"))
	registry.Register("test", 0, declining(&order, "b"))

	unregisterA()
	unregisterA()

	if got := len(registry.Handlers("test")); got != 1 {
		t.Fatalf("got %d handlers after unregister, want 1", got)
	}
	for _, h := range registry.Handlers("test") {
		h(command.Command{Name: "test"}, &execctx.Context{})
	}
	if len(order) != 1 || order[0] != "b" {
		t.Errorf("remaining handler = %v, want [b]", order)
	}
}

func TestRegistryHas(t *testing.T) {
	registry := dispatcher.NewRegistry()
	if registry.Has("missing") {
		t.Error("expected Has to be false for an empty registry")
	}

	unregister := registry.Register("test", 0, func(command.Command, *execctx.Context) bool { return true })
	if !registry.Has("test") {
		t.Error("expected Has to be true after register")
	}
	unregister()
	if registry.Has("test") {
		t.Error("expected Has to be false after unregister")
	}
}

func TestRegistryNames(t *testing.T) {
	registry := dispatcher.NewRegistry()
	registry.Register("zeta", 0, func(command.Command, *execctx.Context) bool { return true })
	registry.Register("alpha", 0, func(command.Command, *execctx.Context) bool { return true })

	names := registry.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Names() = %v, want [alpha zeta]", names)
	}
}

func TestRegistryClear(t *testing.T) {
	registry := dispatcher.NewRegistry()
	registry.Register("test", 0, func(command.Command, *execctx.Context) bool { return true })
	registry.Clear()
	if registry.Has("test") {
		t.Error("expected empty registry after Clear")
	}
}
