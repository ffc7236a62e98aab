package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/scribepad/scribe/internal/command"
)

// payloadToLua converts a command payload to its Lua table shape.
func payloadToLua(L *lua.LState, p command.Payload) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "bool", lua.LBool(p.Bool))
	L.SetField(t, "text", lua.LString(p.Text))
	L.SetField(t, "format", lua.LString(p.Format))
	if p.Key != nil {
		k := L.NewTable()
		if p.Key.Rune != 0 {
			L.SetField(k, "rune", lua.LString(string(p.Key.Rune)))
		}
		L.SetField(k, "shift", lua.LBool(p.Key.Shift))
		L.SetField(k, "ctrl", lua.LBool(p.Key.Ctrl))
		L.SetField(k, "alt", lua.LBool(p.Key.Alt))
		L.SetField(k, "meta", lua.LBool(p.Key.Meta))
		L.SetField(t, "key", k)
	}
	if p.Data != nil {
		d := L.NewTable()
		for mime, payload := range p.Data {
			L.SetField(d, mime, lua.LString(payload))
		}
		L.SetField(t, "data", d)
	}
	return t
}

// payloadFromLua converts the Lua table shape back to a payload.
// Missing fields keep their zero values; unknown fields are ignored.
func payloadFromLua(t *lua.LTable) command.Payload {
	var p command.Payload
	p.Bool = lua.LVAsBool(t.RawGetString("bool"))
	p.Text = stringField(t, "text")
	p.Format = stringField(t, "format")

	if k, ok := t.RawGetString("key").(*lua.LTable); ok {
		key := &command.KeyEvent{
			Shift: lua.LVAsBool(k.RawGetString("shift")),
			Ctrl:  lua.LVAsBool(k.RawGetString("ctrl")),
			Alt:   lua.LVAsBool(k.RawGetString("alt")),
			Meta:  lua.LVAsBool(k.RawGetString("meta")),
		}
		if r := stringField(k, "rune"); r != "" {
			key.Rune = []rune(r)[0]
		}
		p.Key = key
	}

	if d, ok := t.RawGetString("data").(*lua.LTable); ok {
		data := command.DataTransfer{}
		d.ForEach(func(mime, payload lua.LValue) {
			if ms, ok := mime.(lua.LString); ok {
				if ps, ok := payload.(lua.LString); ok {
					data.Set(string(ms), string(ps))
				}
			}
		})
		p.Data = data
	}
	return p
}

func stringField(t *lua.LTable, name string) string {
	if s, ok := t.RawGetString(name).(lua.LString); ok {
		return string(s)
	}
	return ""
}
