package qrdocs_test

import (
	"context"
	"testing"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkFunc func(ctx context.Context, capture *qrdocs.Capture) error

func (f sinkFunc) Push(ctx context.Context, capture *qrdocs.Capture) error {
	return f(ctx, capture)
}

func TestMultiSink_PushesToAllSinks(t *testing.T) {
	t.Parallel()

	var got []string
	record := func(name string) qrdocs.Sink {
		return sinkFunc(func(_ context.Context, _ *qrdocs.Capture) error {
			got = append(got, name)
			return nil
		})
	}

	sink := qrdocs.MultiSink{record("first"), record("second")}
	err := sink.Push(context.Background(), &qrdocs.Capture{URL: "https://app.example.com"})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestMultiSink_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	var called bool
	sink := qrdocs.MultiSink{
		sinkFunc(func(_ context.Context, _ *qrdocs.Capture) error {
			return qrdocs.Errorf(qrdocs.EINTERNAL, "sink unavailable")
		}),
		sinkFunc(func(_ context.Context, _ *qrdocs.Capture) error {
			called = true
			return nil
		}),
	}

	err := sink.Push(context.Background(), &qrdocs.Capture{URL: "https://app.example.com"})

	assert.Equal(t, qrdocs.EINTERNAL, qrdocs.ErrorCode(err))
	assert.False(t, called)
}

func TestCapture_Validate(t *testing.T) {
	t.Parallel()

	capture := &qrdocs.Capture{
		Title:     "Dashboard",
		URL:       "https://app.example.com/dashboard",
		Timestamp: time.Now().UTC(),
		Record:    &qrdocs.PageRecord{URL: "https://app.example.com/dashboard"},
	}

	require.NoError(t, capture.Validate())

	capture.Record = nil
	assert.Equal(t, qrdocs.EINVALID, qrdocs.ErrorCode(capture.Validate()))
}
