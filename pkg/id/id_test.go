package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewAtRoundTripsTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 10, 30, 45, 123000000, time.UTC)
	s := NewAt(ts)
	assert.Len(t, s, 26)

	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(ts), "got %s", got)
}

func TestTimeInvalid(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
