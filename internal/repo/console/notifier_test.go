package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPostMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	require.NoError(t, n.PostMessage(context.Background(), "deals", "*| Update |*\nline"))
	assert.Equal(t, "--- #deals ---\n*| Update |*\nline\n", buf.String())
}

func TestPostMessageWriteError(t *testing.T) {
	err := NewNotifier(failingWriter{}).PostMessage(context.Background(), "deals", "x")
	assert.ErrorContains(t, err, "failed to print message")
}
