package qrdocs

import (
	"fmt"
	"strings"
)

// FormatRecord projects a page record into a deterministic, human-readable
// rendering for LLM context. Identical records always produce byte-identical
// output. A section is emitted only when it has content; each populated
// section is its heading, a blank line, its items, and exactly one closing
// blank line. Links with empty display text stay in the record but never
// render.
func FormatRecord(rec *PageRecord) string {
	if rec == nil {
		return ""
	}

	var b strings.Builder

	if rec.Title != "" {
		b.WriteString("# " + rec.Title + "\n\n")
	}
	if rec.URL != "" {
		b.WriteString("URL: " + rec.URL + "\n\n")
	}

	if len(rec.Headings) > 0 {
		b.WriteString("## Page Structure\n\n")
		for _, h := range rec.Headings {
			indent := strings.Repeat("  ", max(h.Level-1, 0))
			b.WriteString(indent + "- " + h.Text + "\n")
		}
		b.WriteString("\n")
	}

	nav := make([]Link, 0, len(rec.NavigationLinks))
	for _, l := range rec.NavigationLinks {
		if l.Text != "" {
			nav = append(nav, l)
		}
	}
	if len(nav) > 0 {
		b.WriteString("## Available Navigation\n\n")
		for _, l := range nav {
			b.WriteString("- " + l.Text + ": " + l.Href + "\n")
		}
		b.WriteString("\n")
	}

	if len(rec.InteractiveElements) > 0 {
		b.WriteString("## Interactive Elements\n\n")
		for _, el := range rec.InteractiveElements {
			b.WriteString(formatControl(el.Kind, el.Label))
			if el.ID != "" {
				b.WriteString(" (" + el.ID + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(rec.Inputs) > 0 {
		b.WriteString("## Input Elements\n\n")
		for _, in := range rec.Inputs {
			b.WriteString(formatControl(in.Kind, in.Label))
			if in.Placeholder != "" {
				b.WriteString(" (placeholder: " + in.Placeholder + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(rec.Buttons) > 0 {
		b.WriteString("## Button Elements\n\n")
		for _, bt := range rec.Buttons {
			b.WriteString(formatControl(bt.Kind, bt.Label) + "\n")
		}
		b.WriteString("\n")
	}

	if len(rec.Forms) > 0 {
		b.WriteString("## Form Elements\n\n")
		for _, f := range rec.Forms {
			b.WriteString(formatControl(f.Kind, f.Label) + "\n")
		}
		b.WriteString("\n")
	}

	if rec.TextContent != "" {
		b.WriteString("## Page Content\n\n")
		b.WriteString(rec.TextContent + "\n\n")
	}

	return b.String()
}

func formatControl(kind, label string) string {
	return fmt.Sprintf("- %s %q", strings.ToUpper(kind), label)
}
