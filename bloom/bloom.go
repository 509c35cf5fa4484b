// Package bloom provides a probabilistic membership filter used as a
// cheap negative pre-check in front of the exact visited-URL set.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by normalized URL strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL might have been added.
// False positives are possible; false negatives are not, which is what
// makes a negative result safe to trust without consulting the exact set.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// ApproximateCount returns the approximate number of URLs added.
func (f *Filter) ApproximateCount() uint {
	return uint(f.f.ApproximatedSize())
}
