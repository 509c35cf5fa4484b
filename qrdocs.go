// Package qrdocs crawls an authenticated web dashboard and turns each
// page into a structured, LLM-ready record. It maintains a deduplicated,
// rate-limited frontier of same-site URLs, injects the session cookie
// before every navigation, strips each rendered page down to its semantic
// skeleton, and emits one record plus a deterministic text rendering per
// visited page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g. rod/, goquery/, sqlite/).
package qrdocs
