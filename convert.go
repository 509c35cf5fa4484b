package qrdocs

// Converter transforms cleaned page markup into Markdown for the
// on-disk dataset.
type Converter interface {
	Convert(html string) (string, error)
}
