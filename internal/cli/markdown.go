package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderAnnotation renders an item snapshot's free-text Annotation field
// as markdown when attached to a TTY (SPEC_FULL.md domain-stack: `item
// show`), falling back to the raw text otherwise. Grounded on the
// teacher's internal/ui/markdown.go.
func RenderAnnotation(annotation string) string {
	if strings.TrimSpace(annotation) == "" {
		return ""
	}
	if !isOutputTTY() {
		return annotation
	}

	width := termWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return annotation
	}
	rendered, err := r.Render(annotation)
	if err != nil {
		return annotation
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}
