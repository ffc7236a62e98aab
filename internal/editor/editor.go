// Package editor assembles the document, dispatcher, theme, and the
// built-in handler bundles into a ready-to-use editing surface.
package editor

import (
	"fmt"

	"github.com/scribepad/scribe/internal/clipboard"
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/model"
	"github.com/scribepad/scribe/internal/richtext"
	"github.com/scribepad/scribe/internal/theme"
)

// Option configures an Editor.
type Option func(*options)

type options struct {
	theme      *theme.Theme
	config     dispatcher.Config
	focused    bool
	initJSON   []byte
	initDoc    *model.Document
	initFn     func(*model.Document)
	noBuiltins bool
}

// WithTheme sets the render theme.
func WithTheme(th *theme.Theme) Option {
	return func(o *options) { o.theme = th }
}

// WithConfig sets the dispatcher configuration.
func WithConfig(cfg dispatcher.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithFocus starts the editor focused, with a caret placed at the start
// of the first block when no selection is set.
func WithFocus() Option {
	return func(o *options) { o.focused = true }
}

// WithInitialJSON seeds the document from serialized state.
func WithInitialJSON(data []byte) Option {
	return func(o *options) { o.initJSON = data }
}

// WithInitialDocument seeds the editor with an existing document.
func WithInitialDocument(d *model.Document) Option {
	return func(o *options) { o.initDoc = d }
}

// WithInitialFunc runs fn inside an update transaction after the
// document is bootstrapped, before the editor is focused.
func WithInitialFunc(fn func(*model.Document)) Option {
	return func(o *options) { o.initFn = fn }
}

// WithoutBuiltins skips registering the built-in rich-text and clipboard
// handlers. Every dispatch then declines until the caller registers its
// own.
func WithoutBuiltins() Option {
	return func(o *options) { o.noBuiltins = true }
}

// Editor owns a document, a dispatcher with the built-in handlers
// registered, and the active theme.
type Editor struct {
	doc        *model.Document
	disp       *dispatcher.Dispatcher
	theme      *theme.Theme
	focused    bool
	unregister func()
}

// New builds an editor. The document always ends up with at least one
// paragraph block under the root.
func New(opts ...Option) (*Editor, error) {
	o := options{
		theme:  theme.Default(),
		config: dispatcher.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	doc := o.initDoc
	if doc == nil && o.initJSON != nil {
		var err error
		doc, err = model.UnmarshalState(o.initJSON)
		if err != nil {
			return nil, fmt.Errorf("seeding editor state: %w", err)
		}
	}
	if doc == nil {
		doc = model.New()
	}
	if doc.Root().ChildCount() == 0 {
		doc.Update(func() {
			doc.AppendChild(doc.Root(), model.NewParagraph())
		})
	}
	if o.initFn != nil {
		doc.Update(func() { o.initFn(doc) })
	}

	e := &Editor{
		doc:   doc,
		disp:  dispatcher.New(o.config),
		theme: o.theme,
	}
	e.disp.SetDocument(doc)
	e.disp.SetTheme(e.theme)
	e.disp.SetBlur(e.Blur)

	if !o.noBuiltins {
		unregRich := richtext.RegisterAll(e.disp)
		unregClip := clipboard.NewBridge().Register(e.disp)
		e.unregister = func() {
			unregRich()
			unregClip()
		}
	}

	if o.focused {
		e.Focus()
	}
	return e, nil
}

// Document returns the editor's document.
func (e *Editor) Document() *model.Document { return e.doc }

// Dispatcher returns the underlying dispatcher, for registering
// higher-priority handlers.
func (e *Editor) Dispatcher() *dispatcher.Dispatcher { return e.disp }

// Theme returns the active theme.
func (e *Editor) Theme() *theme.Theme { return e.theme }

// SetTheme swaps the active theme.
func (e *Editor) SetTheme(th *theme.Theme) {
	e.theme = th
	e.disp.SetTheme(th)
}

// Dispatch runs a command through the editor's dispatcher.
func (e *Editor) Dispatch(name command.Name, p command.Payload) bool {
	return e.disp.Dispatch(name, p)
}

// Focused reports whether the editor holds focus.
func (e *Editor) Focused() bool { return e.focused }

// Focus gives the editor focus. When no selection is active, a caret is
// placed at the start of the first block.
func (e *Editor) Focus() {
	e.focused = true
	if e.doc.Selection() != nil {
		return
	}
	first, ok := e.doc.ChildAt(e.doc.Root(), 0)
	if !ok {
		return
	}
	if el, isEl := first.(model.Element); isEl {
		e.doc.SetSelection(model.NewCaret(e.doc.PointAtStart(el)))
	}
}

// Blur releases focus. The selection is kept so that focus can return to
// the same place.
func (e *Editor) Blur() { e.focused = false }

// State serializes the document.
func (e *Editor) State() ([]byte, error) {
	return e.doc.MarshalState()
}

// Render returns the rendered markup of the whole document.
func (e *Editor) Render() string {
	rendered := e.doc.RenderTree(e.doc.RootKey(), e.theme)
	if rendered == nil {
		return ""
	}
	return rendered.HTML()
}

// Close removes the built-in handlers.
func (e *Editor) Close() {
	if e.unregister != nil {
		e.unregister()
		e.unregister = nil
	}
}
