package htmltomarkdown_test

import (
	"testing"

	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/jero237/qrticket-docs/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements qrdocs.Converter at compile time.
var _ qrdocs.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Events</h1><h2>Upcoming</h2><h3>Today</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Events")
		assert.Contains(t, md, "## Upcoming")
		assert.Contains(t, md, "### Today")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Open <a href="/events">Events</a> to manage events.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Events](/events)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>First</li><li>Second</li><li>Third</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
		assert.Contains(t, md, "- Third")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Event</th><th>Tickets</th></tr></thead>
<tbody><tr><td>Launch</td><td>120</td></tr><tr><td>Meetup</td><td>45</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Event")
		assert.Contains(t, md, "Tickets")
		assert.Contains(t, md, "Launch")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>Sold out</strong> and <em>pending</em> states.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Sold out**")
		assert.Contains(t, md, "*pending*")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, qrdocs.EINVALID, qrdocs.ErrorCode(err))
	})

	t.Run("handles a sanitized dashboard page", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>Event Dashboard</h1>
<p>Manage your events and ticket sales.</p>
<h2>Upcoming Events</h2>
<ul>
<li><a href="/events/1">Product Launch</a></li>
<li><a href="/events/2">Community Meetup</a></li>
</ul>
<h2>Account</h2>
<p>Signed in as <strong>organizer</strong>.</p>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Event Dashboard")
		assert.Contains(t, md, "## Upcoming Events")
		assert.Contains(t, md, "[Product Launch](/events/1)")
		assert.Contains(t, md, "**organizer**")
	})
}
