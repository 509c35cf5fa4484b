package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/jero237/qrticket-docs/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first navigation proceeds immediately", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Hour)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("paces consecutive navigations to the same domain", func(t *testing.T) {
		t.Parallel()

		interval := 50 * time.Millisecond
		limiter := crawl.NewDomainLimiter(interval)

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		assert.GreaterOrEqual(t, time.Since(start), interval/2)
	})

	t.Run("domains do not wait on each other", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Hour)

		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.example.org"))

		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("zero interval disables pacing", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for i := 0; i < 10; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("returns error when context is canceled mid-wait", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Hour)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "example.com")
		assert.Error(t, err)
	})
}
