// Package main is a small demonstration driver: it builds an editor,
// plays a command script against it, and prints the rendered markup and
// serialized state.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/editor"
	luahost "github.com/scribepad/scribe/internal/plugin/lua"
	"github.com/scribepad/scribe/internal/theme"
)

func main() {
	os.Exit(run())
}

func run() int {
	var themePath string
	var scriptPath string
	flag.StringVar(&themePath, "theme", "", "Path to a TOML theme file")
	flag.StringVar(&scriptPath, "script", "", "Path to a Lua extension script")
	flag.Parse()

	opts := []editor.Option{editor.WithFocus()}
	if themePath != "" {
		th, err := theme.Load(themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts = append(opts, editor.WithTheme(th))
	}

	ed, err := editor.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ed.Close()

	if scriptPath != "" {
		host := luahost.NewHost(ed.Dispatcher())
		defer host.Close()
		if err := host.Load(scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// A short editing session: type a sentence, bold one word, split the
	// block, and indent the second paragraph.
	ed.Dispatch(command.InsertText, command.Payload{Text: "Hello, "})
	ed.Dispatch(command.InsertText, command.Payload{Text: "world"})
	ed.Dispatch(command.InsertText, command.Payload{Text: "."})
	ed.Dispatch(command.KeyEnter, command.Payload{Key: &command.KeyEvent{}})
	ed.Dispatch(command.InsertText, command.Payload{Text: "Second paragraph."})
	ed.Dispatch(command.KeyTab, command.Payload{Key: &command.KeyEvent{}})

	fmt.Println(ed.Render())

	state, err := ed.State()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(state))
	return 0
}
