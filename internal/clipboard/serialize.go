package clipboard

import (
	"encoding/json"
	"strings"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
	"github.com/scribepad/scribe/internal/theme"
)

// SerializeSelection builds the outbound transfer payload for the active
// selection. Three slots are populated independently: the selection's
// plain text, the rendered markup of the touched blocks, and the
// structured node format. Returns false when there is nothing to
// serialize.
func (b *Bridge) SerializeSelection(ctx *execctx.Context) (command.DataTransfer, bool) {
	if ctx.Document == nil {
		return nil, false
	}
	doc := ctx.Document
	sel := doc.Selection()
	switch s := sel.(type) {
	case *model.RangeSelection:
		if s.IsCollapsed() {
			return nil, false
		}
	case *model.NodeSelection:
		if len(s.Keys) == 0 {
			return nil, false
		}
	default:
		return nil, false
	}

	th := ctx.Theme
	if th == nil {
		th = theme.Default()
	}

	blocks := doc.Blocks(sel)
	var markup strings.Builder
	exported := make([]model.SerializedNode, 0, len(blocks))
	for _, block := range blocks {
		if rendered := doc.RenderTree(block.Key(), th); rendered != nil {
			markup.WriteString(rendered.HTML())
		}
		exported = append(exported, doc.Export(block))
	}
	if len(exported) == 0 {
		return nil, false
	}

	data := command.DataTransfer{}
	data.Set(MIMEPlain, doc.SelectionText(sel))
	data.Set(MIMEHTML, markup.String())
	if structured, err := json.Marshal(exported); err == nil {
		data.Set(MIMEScribe, string(structured))
	}
	return data, true
}
