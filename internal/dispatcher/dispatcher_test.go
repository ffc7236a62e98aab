package dispatcher_test

import (
	"testing"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

func TestDispatchShortCircuits(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	secondRan := false
	d.Register("test", 10, func(command.Command, *execctx.Context) bool { return true })
	d.Register("test", 0, func(command.Command, *execctx.Context) bool {
		secondRan = true
		return true
	})

	if !d.Dispatch("test", command.Payload{}) {
		t.Fatal("expected dispatch to be handled")
	}
	if secondRan {
		t.Error("lower-priority handler ran after a handler reported handled")
	}
}

func TestDispatchAllDecline(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.Register("test", 0, func(command.Command, *execctx.Context) bool { return false })
	d.Register("test", 5, func(command.Command, *execctx.Context) bool { return false })

	if d.Dispatch("test", command.Payload{}) {
		t.Error("expected dispatch to report unhandled when every handler declines")
	}
}

func TestDispatchUnknownCommandIsNoOp(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if d.Dispatch("nothing-registered", command.Payload{}) {
		t.Error("expected unhandled for an unregistered command")
	}
}

func TestDispatchDepthGuard(t *testing.T) {
	d := dispatcher.New(dispatcher.Config{MaxDispatchDepth: 4})

	calls := 0
	d.Register("loop", 0, func(cmd command.Command, ctx *execctx.Context) bool {
		calls++
		return ctx.Redispatch("loop", command.Payload{})
	})

	if d.Dispatch("loop", command.Payload{}) {
		t.Error("expected the chain to end unhandled at the depth bound")
	}
	if calls != 4 {
		t.Errorf("handler ran %d times, want 4", calls)
	}
}

func TestDispatchPanicDeclines(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	d.Register("test", 10, func(command.Command, *execctx.Context) bool {
		panic("handler bug")
	})
	d.Register("test", 0, func(command.Command, *execctx.Context) bool { return true })

	if !d.Dispatch("test", command.Payload{}) {
		t.Error("expected the chain to continue past a panicking handler")
	}
}

func TestDispatchRunsOneUpdateTransaction(t *testing.T) {
	doc := model.New()
	d := dispatcher.NewWithDefaults()
	d.SetDocument(doc)

	d.Register("outer", 0, func(cmd command.Command, ctx *execctx.Context) bool {
		return ctx.Redispatch("inner", command.Payload{})
	})
	d.Register("inner", 0, func(command.Command, *execctx.Context) bool { return true })

	before := doc.Version()
	if !d.Dispatch("outer", command.Payload{}) {
		t.Fatal("expected dispatch to be handled")
	}
	if got := doc.Version() - before; got != 1 {
		t.Errorf("version advanced by %d over a nested chain, want 1", got)
	}
}

func TestContextRangeSelectionGuard(t *testing.T) {
	doc := model.New()
	d := dispatcher.NewWithDefaults()
	d.SetDocument(doc)

	var sawRange bool
	d.Register("probe", 0, func(cmd command.Command, ctx *execctx.Context) bool {
		_, sawRange = ctx.RangeSelection()
		return true
	})

	d.Dispatch("probe", command.Payload{})
	if sawRange {
		t.Error("expected no range selection on a fresh document")
	}

	doc.SetSelection(model.NewNodeSelection(doc.RootKey()))
	d.Dispatch("probe", command.Payload{})
	if sawRange {
		t.Error("expected node-set selection to fail the range guard")
	}
}
