// Package goquery implements DOM sanitization and page extraction over
// an in-memory document, so both are unit-testable without a browser.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	qrdocs "github.com/jero237/qrticket-docs"
	"golang.org/x/net/html"
)

var _ qrdocs.Sanitizer = (*Sanitizer)(nil)

// removeSelector matches elements that carry no content semantics:
// executable and styling resources, media, decorative breaks, and the
// framework-injected routing announcer.
const removeSelector = "script, style, noscript, svg, img, br, hr, canvas, audio, video, source, next-route-announcer"

// strippedAttrs are presentation-only attributes removed from every
// element, along with any attribute carrying the data- prefix.
var strippedAttrs = map[string]bool{
	"class":           true,
	"style":           true,
	"tabindex":        true,
	"aria-expanded":   true,
	"aria-selected":   true,
	"aria-haspopup":   true,
	"aria-atomic":     true,
	"aria-live":       true,
	"aria-relevant":   true,
	"target":          true,
	"rel":             true,
	"spellcheck":      true,
	"draggable":       true,
	"contenteditable": true,
	"aria-label":      true,
}

// Sanitizer reduces a rendered document to its semantic skeleton.
// Mutation is local to each Sanitize call; the input is never changed.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes non-semantic elements, comment nodes, and presentation
// attributes, collapses layout-only empty containers, and returns the
// serialized inner markup of the body element.
func (s *Sanitizer) Sanitize(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", qrdocs.Errorf(qrdocs.EEXTRACTION, "failed to parse HTML: %v", err)
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return "", qrdocs.Errorf(qrdocs.EEXTRACTION, "document has no body")
	}

	// Order matters: attribute stripping and empty-container collapse
	// assume scripts, media, and comments are already gone.
	doc.Find(removeSelector).Remove()
	removeComments(body)
	stripAttributes(body)
	collapseEmptyContainers(body)

	cleaned, err := body.Html()
	if err != nil {
		return "", qrdocs.Errorf(qrdocs.EEXTRACTION, "failed to serialize body: %v", err)
	}
	return cleaned, nil
}

// removeComments drops comment nodes anywhere in the selection's subtree.
func removeComments(sel *goquery.Selection) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.CommentNode {
				n.RemoveChild(c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
}

// stripAttributes removes data-prefixed and deny-listed attributes from
// every element under the selection.
func stripAttributes(sel *goquery.Selection) {
	sel.Find("*").Each(func(_ int, el *goquery.Selection) {
		for _, node := range el.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				if keepAttribute(attr.Key) {
					kept = append(kept, attr)
				}
			}
			node.Attr = kept
		}
	})
}

func keepAttribute(name string) bool {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, "data-") {
		return false
	}
	return !strippedAttrs[name]
}

// collapseEmptyContainers removes layout-only wrappers: div, span, and p
// elements with no child elements, no trimmed text, and none of the id,
// href, or type attributes. Runs to a fixed point so containers emptied
// by an earlier pass are collapsed too, at any nesting depth.
func collapseEmptyContainers(body *goquery.Selection) {
	for {
		removed := 0
		body.Find("div, span, p").Each(func(_ int, el *goquery.Selection) {
			if el.Children().Length() > 0 {
				return
			}
			if hasSemanticAttr(el) {
				return
			}
			if strings.TrimSpace(el.Text()) != "" {
				return
			}
			el.Remove()
			removed++
		})
		if removed == 0 {
			return
		}
	}
}

func hasSemanticAttr(el *goquery.Selection) bool {
	for _, name := range []string{"id", "href", "type"} {
		if _, ok := el.Attr(name); ok {
			return true
		}
	}
	return false
}
