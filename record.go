package qrdocs

// PageRecord is the structured projection of one sanitized dashboard page.
// A record is produced exactly once per successfully visited URL and is
// immutable once constructed.
type PageRecord struct {
	Title               string               `json:"title"`
	URL                 string               `json:"url"`
	Headings            []Heading            `json:"headings"`
	NavigationLinks     []Link               `json:"navigationLinks"`
	Inputs              []InputElement       `json:"inputs"`
	Buttons             []ButtonElement      `json:"buttons"`
	Forms               []FormElement        `json:"forms"`
	InteractiveElements []InteractiveElement `json:"interactiveElements"`
	TextContent         string               `json:"textContent"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PageRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	return nil
}

// Heading is a document heading in document order.
// Level is the numeric suffix of the heading tag (1..6).
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	AnchorID string `json:"anchorId,omitempty"`
}

// Link is an anchor element's target and display text. Links with empty
// display text are retained here and filtered only at render time.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// InputElement is a form input control.
// Kind is the input's effective type (e.g. "text", "email", "checkbox").
type InputElement struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
}

// ButtonElement is a button control.
// Kind is the button's type attribute, or "button" when absent.
type ButtonElement struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// FormElement is a form container, identified by its name or id attribute.
type FormElement struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// InteractiveElement is any clickable or focusable control not already
// classed as an input, button, form, or anchor (e.g. role-annotated tabs,
// menu items, summary/details disclosures).
type InteractiveElement struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	ID    string `json:"id,omitempty"`
}
