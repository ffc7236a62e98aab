// Package lua hosts Lua scripts that extend the command set.
//
// A script requires the "scribe" module and registers handlers for
// existing command names at a chosen priority. Registering above the
// built-in handlers (priority 0) overrides them; a handler that returns
// false declines and the chain continues:
//
//	local scribe = require("scribe")
//
//	scribe.register("insertText", 10, function(name, payload)
//	    if payload.text == "--" then
//	        return scribe.dispatch("insertText", { text = "—" })
//	    end
//	    return false
//	end)
//
// Scripts run sandboxed: file, shell, and module loading primitives are
// removed, leaving the base, string, table, and math libraries. The host
// is not safe for concurrent use; it follows the dispatcher's
// single-threaded update contract.
package lua
