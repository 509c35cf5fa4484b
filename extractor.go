package qrdocs

// Sanitizer strips a rendered document down to its semantic skeleton:
// non-semantic elements, comment nodes, and presentation attributes are
// removed, and layout-only empty containers are collapsed.
type Sanitizer interface {
	// Sanitize returns the cleaned inner markup of the body element.
	// Returns EEXTRACTION if the document has no body.
	Sanitize(html string) (string, error)
}

// Extractor projects a sanitized snapshot into a structured record.
// Extraction is a pure read: invoking it twice on the same snapshot
// yields structurally equal records.
type Extractor interface {
	Extract(snapshot *Snapshot) (*PageRecord, error)
}
