// Package theme provides theme configuration for node rendering.
//
// A theme maps node variants and text styles to class names applied when a
// node produces its renderable element. Themes load from TOML files and can
// be live-reloaded through the Watcher.
package theme

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// TextTheme holds class names for character styles.
type TextTheme struct {
	Bold          string `toml:"bold"`
	Italic        string `toml:"italic"`
	Underline     string `toml:"underline"`
	Strikethrough string `toml:"strikethrough"`
	Code          string `toml:"code"`
}

// Theme holds class names per node variant.
type Theme struct {
	// Paragraph is the class for paragraph blocks.
	Paragraph string `toml:"paragraph"`

	// Quote is the class for quote blocks.
	Quote string `toml:"quote"`

	// Code is the class for code blocks.
	Code string `toml:"code"`

	// Heading maps heading tags (h1..h5) to class names.
	Heading map[string]string `toml:"heading"`

	// Text holds character style classes.
	Text TextTheme `toml:"text"`
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{
		Paragraph: "editor-paragraph",
		Quote:     "editor-quote",
		Code:      "editor-code",
		Heading: map[string]string{
			"h1": "editor-heading-h1",
			"h2": "editor-heading-h2",
			"h3": "editor-heading-h3",
			"h4": "editor-heading-h4",
			"h5": "editor-heading-h5",
		},
		Text: TextTheme{
			Bold:          "editor-text-bold",
			Italic:        "editor-text-italic",
			Underline:     "editor-text-underline",
			Strikethrough: "editor-text-strikethrough",
			Code:          "editor-text-code",
		},
	}
}

// HeadingClass returns the class for a heading tag, if any.
func (t *Theme) HeadingClass(tag string) string {
	if t.Heading == nil {
		return ""
	}
	return t.Heading[tag]
}

// Load reads a theme from a TOML file. Fields missing from the file keep
// their defaults.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a theme from TOML data on top of the defaults.
func Parse(data []byte) (*Theme, error) {
	t := Default()
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}
	return t, nil
}
