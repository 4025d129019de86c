package logging

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board/internal/errors"
)

func TestNew(t *testing.T) {
	t.Setenv("KB_DEBUG", "")

	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"defaults", "", "", logrus.InfoLevel, false},
		{"warn text", "warn", "text", logrus.WarnLevel, false},
		{"debug json", "debug", "JSON", logrus.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.format, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("loud", "", io.Discard)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	_, err = New("info", "xml", io.Discard)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestNew_DebugOverride(t *testing.T) {
	t.Setenv("KB_DEBUG", "1")

	log, err := New("error", "", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = New("trace", "", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, logrus.TraceLevel, log.GetLevel())
}

func TestNew_WritesJSON(t *testing.T) {
	t.Setenv("KB_DEBUG", "")
	var buf bytes.Buffer

	log, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)
	log.WithField("id", "abc").Info("task created")

	assert.Contains(t, buf.String(), `"id":"abc"`)
	assert.Contains(t, buf.String(), `"msg":"task created"`)
}

func TestDiscard(t *testing.T) {
	assert.Equal(t, io.Discard, Discard().Out)
}
