package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pybites-search/internal/catalog"
)

// Output formats.
const (
	OutputText   = "text"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// Label colors.
const (
	colorType  = lipgloss.Color("#7D56F4")
	colorTitle = lipgloss.Color("#04B575")
	colorLink  = lipgloss.Color("#626262")
)

// renderer writes search results in one of the output formats.
type renderer struct {
	typeLabel  lipgloss.Style
	titleLabel lipgloss.Style
	linkLabel  lipgloss.Style
	color      bool
}

func newRenderer(color bool) renderer {
	return renderer{
		typeLabel:  lipgloss.NewStyle().Foreground(colorType).Bold(true),
		titleLabel: lipgloss.NewStyle().Foreground(colorTitle).Bold(true),
		linkLabel:  lipgloss.NewStyle().Foreground(colorLink),
		color:      color,
	}
}

func (r renderer) label(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

func (r renderer) render(w io.Writer, format string, items []catalog.Item, showType bool) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []catalog.Item{}
		}
		return enc.Encode(items)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return r.renderText(w, items, showType)
	}
}

// renderText prints one block per item. The type line is only printed when the
// results were not restricted to a single content type.
func (r renderer) renderText(w io.Writer, items []catalog.Item, showType bool) error {
	for _, item := range items {
		if showType {
			if _, err := fmt.Fprintf(w, "%s %s\n", r.label(r.typeLabel, "Type:"), item.ContentType); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s\n%s %s\n\n",
			r.label(r.titleLabel, "Title:"), item.Title,
			r.label(r.linkLabel, "Link:"), item.Link,
		); err != nil {
			return err
		}
	}
	return nil
}
