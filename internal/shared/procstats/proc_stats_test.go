package procstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	stats, err := Read()
	require.NotNil(t, stats)

	assert.Positive(t, stats.NumGoroutine)
	assert.Positive(t, stats.HeapAllocMB)
	if err == nil {
		assert.Positive(t, stats.RSSMB)
	}
}
