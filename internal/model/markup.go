package model

import "sync"

// MarkupConverter maps an external markup tag onto a node variant.
// Converters compete by priority when several candidates exist for one
// tag; the built-in converters all sit at priority 0 so that consumer
// converters registered at the same or a higher priority win.
type MarkupConverter struct {
	// Priority orders competing converters for the same tag (higher
	// wins).
	Priority int

	// Convert builds a detached element for the tag.
	Convert func(tag string) Element
}

var (
	markupMu         sync.Mutex
	markupConverters = map[string][]*MarkupConverter{}
)

// RegisterMarkupConverter installs a converter for an external tag name.
// It returns an idempotent unregister function. Among registered
// converters of equal priority the earlier registration wins.
func RegisterMarkupConverter(tag string, c MarkupConverter) func() {
	markupMu.Lock()
	entry := &c
	markupConverters[tag] = append(markupConverters[tag], entry)
	markupMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			markupMu.Lock()
			defer markupMu.Unlock()
			list := markupConverters[tag]
			for i, got := range list {
				if got == entry {
					markupConverters[tag] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// MatchExternalMarkup returns the best converter for an external tag
// name, or nil when no variant recognizes it. Registered converters beat
// the built-in on priority ties.
func MatchExternalMarkup(tag string) *MarkupConverter {
	builtin := builtinMarkup(tag)

	markupMu.Lock()
	defer markupMu.Unlock()
	best := builtin
	for _, c := range markupConverters[tag] {
		switch {
		case best == nil, c.Priority > best.Priority:
			best = c
		case best == builtin && c.Priority == best.Priority:
			best = c
		}
	}
	return best
}

func builtinMarkup(tag string) *MarkupConverter {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5":
		return &MarkupConverter{
			Convert: func(tag string) Element {
				return NewHeading(int(tag[1] - '0'))
			},
		}
	case "blockquote":
		return &MarkupConverter{
			Convert: func(string) Element { return NewQuote() },
		}
	case "p":
		return &MarkupConverter{
			Convert: func(string) Element { return NewParagraph() },
		}
	case "pre":
		return &MarkupConverter{
			Convert: func(string) Element { return NewCode("") },
		}
	default:
		return nil
	}
}
