package theme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scribepad/scribe/internal/theme"
)

func TestDefaultTheme(t *testing.T) {
	th := theme.Default()
	if th.Paragraph == "" || th.Quote == "" || th.Code == "" {
		t.Error("default theme has empty block classes")
	}
	if th.HeadingClass("h2") == "" {
		t.Error("default theme has no class for h2")
	}
	if th.HeadingClass("h9") != "" {
		t.Error("unexpected class for an unknown heading tag")
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	src := []byte(`
paragraph = "my-para"

[heading]
h1 = "my-h1"

[text]
bold = "my-bold"
`)
	th, err := theme.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Paragraph != "my-para" {
		t.Errorf("Paragraph = %q, want %q", th.Paragraph, "my-para")
	}
	if th.HeadingClass("h1") != "my-h1" {
		t.Errorf("h1 class = %q, want %q", th.HeadingClass("h1"), "my-h1")
	}
	if th.Text.Bold != "my-bold" {
		t.Errorf("bold class = %q, want %q", th.Text.Bold, "my-bold")
	}
	// Fields absent from the file keep their defaults.
	if th.Quote != theme.Default().Quote {
		t.Errorf("Quote = %q, want the default preserved", th.Quote)
	}
}

func TestParseRejectsInvalidTOML(t *testing.T) {
	if _, err := theme.Parse([]byte("= broken")); err == nil {
		t.Error("expected an error for invalid TOML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte(`code = "from-file"`), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := theme.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Code != "from-file" {
		t.Errorf("Code = %q, want %q", th.Code, "from-file")
	}

	if _, err := theme.Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte(`code = "x"`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := theme.Watch(path, func(*theme.Theme) {})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
