package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Extractor = (*Extractor)(nil)

// interactiveRoles are role attribute values that mark an element as a
// clickable or focusable control.
var interactiveRoles = map[string]bool{
	"button":     true,
	"checkbox":   true,
	"combobox":   true,
	"link":       true,
	"listbox":    true,
	"menuitem":   true,
	"option":     true,
	"radio":      true,
	"searchbox":  true,
	"slider":     true,
	"spinbutton": true,
	"switch":     true,
	"tab":        true,
	"textbox":    true,
}

// nativeControls are tags already captured by their own record sequence
// and therefore excluded from the interactive superset.
var nativeControls = map[string]bool{
	"a":        true,
	"button":   true,
	"form":     true,
	"input":    true,
	"label":    true,
	"option":   true,
	"select":   true,
	"textarea": true,
}

// Extractor projects a sanitized snapshot into a page record.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract assembles a PageRecord from the snapshot's sanitized markup.
// It is a pure read: extracting the same snapshot twice yields
// structurally equal records.
func (e *Extractor) Extract(snap *qrdocs.Snapshot) (*qrdocs.PageRecord, error) {
	if snap == nil {
		return nil, qrdocs.Errorf(qrdocs.EINVALID, "snapshot required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, qrdocs.Errorf(qrdocs.EEXTRACTION, "failed to parse snapshot markup: %v", err)
	}

	rec := &qrdocs.PageRecord{
		Title:               snap.Title,
		URL:                 snap.URL,
		Headings:            extractHeadings(doc),
		NavigationLinks:     extractLinks(doc),
		Inputs:              extractInputs(doc),
		Buttons:             extractButtons(doc),
		Forms:               extractForms(doc),
		InteractiveElements: extractInteractive(doc),
		TextContent:         collapseWhitespace(doc.Find("body").Text()),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func extractHeadings(doc *goquery.Document) []qrdocs.Heading {
	var headings []qrdocs.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		headings = append(headings, qrdocs.Heading{
			Level:    int(name[1] - '0'),
			Text:     strings.TrimSpace(sel.Text()),
			AnchorID: sel.AttrOr("id", ""),
		})
	})
	return headings
}

func extractLinks(doc *goquery.Document) []qrdocs.Link {
	var links []qrdocs.Link
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		links = append(links, qrdocs.Link{
			Text: strings.TrimSpace(sel.Text()),
			Href: sel.AttrOr("href", ""),
		})
	})
	return links
}

func extractInputs(doc *goquery.Document) []qrdocs.InputElement {
	var inputs []qrdocs.InputElement
	doc.Find("input, textarea, select").Each(func(_ int, sel *goquery.Selection) {
		inputs = append(inputs, qrdocs.InputElement{
			Kind:        inputKind(sel),
			Label:       controlLabel(doc, sel),
			Placeholder: sel.AttrOr("placeholder", ""),
		})
	})
	return inputs
}

// inputKind returns the control's effective type: the type attribute for
// input elements (defaulting to "text"), the tag name otherwise.
func inputKind(sel *goquery.Selection) string {
	name := goquery.NodeName(sel)
	if name != "input" {
		return name
	}
	if t := strings.ToLower(strings.TrimSpace(sel.AttrOr("type", ""))); t != "" {
		return t
	}
	return "text"
}

// controlLabel returns the control's trimmed visible text, falling back
// to an associated label element: one referencing the control's id via
// for=, or a wrapping label ancestor. Returns "" when neither exists.
func controlLabel(doc *goquery.Document, sel *goquery.Selection) string {
	if text := strings.TrimSpace(sel.Text()); text != "" {
		return text
	}
	if id := sel.AttrOr("id", ""); id != "" {
		label := doc.Find(fmt.Sprintf("label[for=%q]", id))
		if text := strings.TrimSpace(label.Text()); text != "" {
			return text
		}
	}
	return strings.TrimSpace(sel.Closest("label").Text())
}

func extractButtons(doc *goquery.Document) []qrdocs.ButtonElement {
	var buttons []qrdocs.ButtonElement
	doc.Find("button").Each(func(_ int, sel *goquery.Selection) {
		kind := strings.ToLower(strings.TrimSpace(sel.AttrOr("type", "")))
		if kind == "" {
			kind = "button"
		}
		buttons = append(buttons, qrdocs.ButtonElement{
			Kind:  kind,
			Label: strings.TrimSpace(sel.Text()),
		})
	})
	return buttons
}

// extractForms identifies forms by their name or id attribute; subtree
// text is deliberately not used as a form label since it duplicates the
// page content wholesale.
func extractForms(doc *goquery.Document) []qrdocs.FormElement {
	var forms []qrdocs.FormElement
	doc.Find("form").Each(func(_ int, sel *goquery.Selection) {
		label := sel.AttrOr("name", "")
		if label == "" {
			label = sel.AttrOr("id", "")
		}
		forms = append(forms, qrdocs.FormElement{
			Kind:  "form",
			Label: label,
		})
	})
	return forms
}

// extractInteractive captures the superset of clickable/focusable
// controls not already classed as inputs, buttons, forms, or anchors:
// elements with an interactive role, summary disclosures, and elements
// carrying an onclick handler.
func extractInteractive(doc *goquery.Document) []qrdocs.InteractiveElement {
	var els []qrdocs.InteractiveElement
	doc.Find("[role], summary, [onclick]").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if nativeControls[name] {
			return
		}

		kind := name
		if role, ok := sel.Attr("role"); ok {
			role = strings.ToLower(strings.TrimSpace(role))
			if interactiveRoles[role] {
				kind = role
			} else if name != "summary" {
				if _, clickable := sel.Attr("onclick"); !clickable {
					return
				}
			}
		}

		els = append(els, qrdocs.InteractiveElement{
			Kind:  kind,
			Label: strings.TrimSpace(sel.Text()),
			ID:    sel.AttrOr("id", ""),
		})
	})
	return els
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
