package ai

import (
	"bytes"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyStream_ReadsProducedBody(t *testing.T) {
	body := newBodyStream()
	body.Start(func() error {
		_, err := io.Copy(body.Writer(), bytes.NewReader([]byte("audio-bytes")))
		return err
	})

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
	assert.NoError(t, body.Close())
}

func TestBodyStream_CloseWaitsForProducer(t *testing.T) {
	var exited atomic.Bool
	body := newBodyStream()
	body.Start(func() error {
		defer exited.Store(true)
		// Blocks until the reader side is closed.
		_, err := body.Writer().Write(make([]byte, 1<<20))
		return err
	})

	_ = body.Close()
	assert.True(t, exited.Load())
}
