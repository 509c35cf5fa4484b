// Package htmltomarkdown renders cleaned page markup as Markdown for
// the on-disk dataset's human-readable rendition.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Converter = (*Converter)(nil)

// Converter produces CommonMark from sanitized HTML. The table plugin
// matters here: dashboard pages are mostly tabular.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms HTML into Markdown. Blank input is rejected
// rather than silently producing an empty document.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", qrdocs.Errorf(qrdocs.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
