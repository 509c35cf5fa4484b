package qrdocs_test

import (
	"testing"

	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/stretchr/testify/assert"
)

func TestFormatRecord(t *testing.T) {
	t.Parallel()

	t.Run("renders headings with level indentation", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			Headings: []qrdocs.Heading{
				{Level: 1, Text: "Events"},
				{Level: 2, Text: "Upcoming"},
			},
		}

		result := qrdocs.FormatRecord(rec)

		assert.Equal(t, "## Page Structure\n\n- Events\n  - Upcoming\n\n", result)
	})

	t.Run("omits links with empty display text", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			NavigationLinks: []qrdocs.Link{
				{Text: "Events", Href: "/events"},
				{Text: "", Href: "/hidden"},
			},
		}

		result := qrdocs.FormatRecord(rec)

		assert.Contains(t, result, "- Events: /events\n")
		assert.NotContains(t, result, "/hidden")
	})

	t.Run("omits navigation section when every link text is empty", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			NavigationLinks: []qrdocs.Link{{Text: "", Href: "/hidden"}},
		}

		result := qrdocs.FormatRecord(rec)

		assert.NotContains(t, result, "## Available Navigation")
	})

	t.Run("renders a full record in section order", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			Title: "Dashboard",
			URL:   "https://app.example.com/dashboard",
			Headings: []qrdocs.Heading{
				{Level: 1, Text: "Dashboard", AnchorID: "top"},
			},
			NavigationLinks: []qrdocs.Link{
				{Text: "Events", Href: "/events"},
			},
			Inputs: []qrdocs.InputElement{
				{Kind: "search", Label: "Search", Placeholder: "Find an event"},
			},
			Buttons: []qrdocs.ButtonElement{
				{Kind: "submit", Label: "Create Event"},
			},
			Forms: []qrdocs.FormElement{
				{Kind: "form", Label: "event-search"},
			},
			InteractiveElements: []qrdocs.InteractiveElement{
				{Kind: "tab", Label: "Upcoming", ID: "tab-upcoming"},
			},
			TextContent: "Dashboard Events Upcoming",
		}

		result := qrdocs.FormatRecord(rec)

		expected := "# Dashboard\n\n" +
			"URL: https://app.example.com/dashboard\n\n" +
			"## Page Structure\n\n- Dashboard\n\n" +
			"## Available Navigation\n\n- Events: /events\n\n" +
			"## Interactive Elements\n\n- TAB \"Upcoming\" (tab-upcoming)\n\n" +
			"## Input Elements\n\n- SEARCH \"Search\" (placeholder: Find an event)\n\n" +
			"## Button Elements\n\n- SUBMIT \"Create Event\"\n\n" +
			"## Form Elements\n\n- FORM \"event-search\"\n\n" +
			"## Page Content\n\nDashboard Events Upcoming\n\n"
		assert.Equal(t, expected, result)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			Title:    "Events",
			URL:      "https://app.example.com/events",
			Headings: []qrdocs.Heading{{Level: 1, Text: "Events"}},
		}

		assert.Equal(t, qrdocs.FormatRecord(rec), qrdocs.FormatRecord(rec))
	})

	t.Run("omits empty sections", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{URL: "https://app.example.com/empty"}

		result := qrdocs.FormatRecord(rec)

		assert.Equal(t, "URL: https://app.example.com/empty\n\n", result)
	})

	t.Run("returns empty string for nil record", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, qrdocs.FormatRecord(nil))
	})

	t.Run("omits id parentheses when interactive element has no id", func(t *testing.T) {
		t.Parallel()

		rec := &qrdocs.PageRecord{
			InteractiveElements: []qrdocs.InteractiveElement{
				{Kind: "menuitem", Label: "Settings"},
			},
		}

		result := qrdocs.FormatRecord(rec)

		assert.Equal(t, "## Interactive Elements\n\n- MENUITEM \"Settings\"\n\n", result)
	})
}
