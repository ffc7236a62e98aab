package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

// ErrClosed indicates a load on a closed host.
var ErrClosed = errors.New("lua: host is closed")

// Host runs Lua scripts against a dispatcher. Handlers registered by
// scripts live until the host is closed or their unregister function is
// called from Lua.
type Host struct {
	state  *lua.LState
	disp   *dispatcher.Dispatcher
	closed bool

	unregisters []func()
}

// NewHost creates a host bound to a dispatcher.
func NewHost(disp *dispatcher.Dispatcher) *Host {
	h := &Host{
		state: lua.NewState(),
		disp:  disp,
	}
	h.sandbox()
	h.state.PreloadModule("scribe", h.loader)
	return h
}

// sandbox strips the primitives that load code or reach the filesystem.
func (h *Host) sandbox() {
	L := h.state
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}

// Load runs a script file.
func (h *Host) Load(path string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("loading script %s: %w", path, err)
	}
	return nil
}

// LoadString runs inline script source.
func (h *Host) LoadString(src string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.state.DoString(src); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return nil
}

// Close unregisters every script handler and shuts the Lua state down.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	for _, unregister := range h.unregisters {
		unregister()
	}
	h.unregisters = nil
	h.state.Close()
}

// loader builds the "scribe" module table.
func (h *Host) loader(L *lua.LState) int {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"register": h.luaRegister,
		"dispatch": h.luaDispatch,
	})
	L.Push(mod)
	return 1
}

// luaRegister implements scribe.register(name, priority, fn). It returns
// an unregister function.
func (h *Host) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	priority := L.CheckInt(2)
	fn := L.CheckFunction(3)

	unregister := h.disp.Register(command.Name(name), priority, h.handlerFor(fn))
	h.unregisters = append(h.unregisters, unregister)

	L.Push(L.NewFunction(func(*lua.LState) int {
		unregister()
		return 0
	}))
	return 1
}

// luaDispatch implements scribe.dispatch(name [, payload]).
func (h *Host) luaDispatch(L *lua.LState) int {
	name := L.CheckString(1)
	var p command.Payload
	if L.GetTop() >= 2 {
		p = payloadFromLua(L.CheckTable(2))
	}
	L.Push(lua.LBool(h.disp.Dispatch(command.Name(name), p)))
	return 1
}

// handlerFor wraps a Lua function as a command handler. A script error
// declines the dispatch rather than failing it.
func (h *Host) handlerFor(fn *lua.LFunction) dispatcher.Handler {
	return func(cmd command.Command, _ *execctx.Context) bool {
		if h.closed {
			return false
		}
		L := h.state
		err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			lua.LString(cmd.Name), payloadToLua(L, cmd.Payload))
		if err != nil {
			return false
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsBool(ret)
	}
}
