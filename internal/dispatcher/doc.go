// Package dispatcher routes editing commands to handlers.
//
// The dispatcher is the hub between translated input events and the
// document model. A host translates raw events into (command name,
// payload) pairs and dispatches them; handlers inspect the active
// selection and apply model mutations.
//
// # Handler chains
//
// Multiple handlers can be registered for one command name. They run in
// descending priority order, registration order on ties, and the chain
// stops at the first handler that reports handled. A handler returning
// false has declined, not failed: the next handler, or default platform
// behavior upstream, takes over. The built-in rich-text handlers all
// register at priority 0 so consumers can override any of them by
// registering at a higher priority.
//
// # Re-entrant dispatch
//
// Handlers may dispatch other commands through their context (the tab
// key re-dispatches to indentContent, backspace to deleteCharacter).
// Nested dispatches execute depth-first before the outer handler
// returns, join the outer update transaction, and are bounded by
// Config.MaxDispatchDepth.
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	d.SetDocument(doc)
//	d.SetTheme(theme.Default())
//
//	unregister := d.Register(command.InsertText, 0, handler)
//	handled := d.Dispatch(command.InsertText, command.Payload{Text: "x"})
//	unregister()
package dispatcher
