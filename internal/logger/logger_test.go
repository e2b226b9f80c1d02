package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(&buf, tt.level, "text")
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewInvalidLevelWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewWithOutput(&buf, "bogus", "text")
	assert.Contains(t, buf.String(), "Invalid log level 'bogus'")
}

func TestJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithOutput(&buf, "info", "json")
	log.WithField("account_id", "ACC-1").Info("computed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "computed", entry["msg"])
	assert.Equal(t, "ACC-1", entry["account_id"])
	assert.Equal(t, "info", entry["level"])
}
