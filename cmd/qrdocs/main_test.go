package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/jero237/qrticket-docs/cmd/qrdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			// Usage goes to stdout when explicitly requested
			assert.Contains(t, stdout.String(), "Usage: qrdocs")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	// No args should show usage and return an error
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: qrdocs")
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"version"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "qrdocs dev")
	assert.Empty(t, stderr.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"frobnicate"}, stdout, stderr)

	assert.Error(t, err)
}
