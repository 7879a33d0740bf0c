package logutils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferred_holdsUntilFlush(t *testing.T) {
	d := &Deferred{}
	logger := zerolog.New(d)

	logger.Info().Msg("while tui runs")
	assert.Positive(t, d.Len())

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Contains(t, out.String(), "while tui runs")
	assert.Zero(t, d.Len())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String())
}

func TestDeferred_concurrentWrites(t *testing.T) {
	d := &Deferred{}

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Write([]byte("x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, d.Len())
}
