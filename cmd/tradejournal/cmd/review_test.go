package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/internal/report"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReviewReportsWriteErrors(t *testing.T) {
	t.Parallel()

	err := writeReview(failingWriter{}, report.Review{Title: "May"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
