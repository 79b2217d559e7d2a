package sfoglia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsma/sfoglia/pkg/sfoglia"
)

func TestLoadingNotReadyUntilAllSignals(t *testing.T) {
	s := sfoglia.NewLoadingStore(nil)

	assert.False(t, s.Ready())
	s.MarkScrollReady()
	assert.False(t, s.Ready())
	s.MarkViewReady()
	assert.False(t, s.Ready())
	s.MarkFontsReady()
	assert.True(t, s.Ready())
}

func TestLoadingOnReadyFiresExactlyOnce(t *testing.T) {
	s := sfoglia.NewLoadingStore(nil)

	fired := 0
	s.OnReady(func() { fired++ })

	s.MarkScrollReady()
	s.MarkViewReady()
	s.MarkFontsReady()
	assert.Equal(t, 1, fired)

	// Repeated signals must not refire; the flags are monotonic.
	s.MarkScrollReady()
	s.MarkFontsReady()
	assert.Equal(t, 1, fired)
	assert.True(t, s.Ready())
}

func TestLoadingOnReadyAfterReadyRunsImmediately(t *testing.T) {
	s := sfoglia.NewLoadingStore(nil)
	s.MarkScrollReady()
	s.MarkViewReady()
	s.MarkFontsReady()

	fired := false
	s.OnReady(func() { fired = true })
	assert.True(t, fired)
}

func TestFirstLoadFlipsPermanently(t *testing.T) {
	s := sfoglia.NewLoadingStore(nil)

	assert.True(t, s.FirstLoad())
	s.CompleteFirstLoad()
	assert.False(t, s.FirstLoad())

	// No signal combination brings it back within a session.
	s.MarkScrollReady()
	s.MarkViewReady()
	s.MarkFontsReady()
	assert.False(t, s.FirstLoad())
}
