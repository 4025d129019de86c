package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := debugLog.Out
	debugLog.SetOutput(buf)
	t.Cleanup(func() { debugLog.SetOutput(prev) })
	return buf
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"false", false},
		{"0", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("KB_DEBUG", tt.value)
			assert.Equal(t, tt.want, DebugEnabled())
		})
	}
}

func TestDebugf(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("KB_DEBUG", "")
	Debugf("hidden %s", "line")
	assert.Empty(t, buf.String())

	t.Setenv("KB_DEBUG", "1")
	Debugf("shown %s", "line")
	assert.Contains(t, buf.String(), "shown line")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestDebugln(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("KB_DEBUG", "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("KB_DEBUG", "true")
	Debugln("shown")
	assert.Contains(t, buf.String(), "shown")
}
