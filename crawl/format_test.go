package crawl_test

import (
	"testing"

	"github.com/jero237/qrticket-docs/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"shorter than max", "https://a.com/x", 50, "https://a.com/x"},
		{"keeps the end", "https://dash.example.com/events/123/attendees", 20, "...nts/123/attendees"},
		{"zero max", "https://a.com", 0, ""},
		{"tiny max", "https://a.com", 3, "htt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.LessOrEqual(t, len(got), max(tt.maxLen, 0))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "2.0 KB", crawl.FormatBytes(2048))
	assert.Equal(t, "1.5 MB", crawl.FormatBytes(1024*1024*3/2))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", crawl.FormatTokens(999))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1700))
}
