package mock

import qrdocs "github.com/jero237/qrticket-docs"

var _ qrdocs.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of qrdocs.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) (string, error)
}

func (s *Sanitizer) Sanitize(html string) (string, error) {
	return s.SanitizeFn(html)
}

var _ qrdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of qrdocs.Extractor.
type Extractor struct {
	ExtractFn func(snapshot *qrdocs.Snapshot) (*qrdocs.PageRecord, error)
}

func (e *Extractor) Extract(snapshot *qrdocs.Snapshot) (*qrdocs.PageRecord, error) {
	return e.ExtractFn(snapshot)
}
