package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Buffer: &buf, Level: WarnLevel, Type: TypeText})

	l.Info("hidden")
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	l.Warn("clamped content height", "child", 2)
	assert.Contains(t, buf.String(), "clamped content height")
	assert.Contains(t, buf.String(), "child=2")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Buffer: &buf, Level: DebugLevel, Type: TypeJSON})
	l.Debug("layout", "frames", 4)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "layout", record["msg"])
	assert.EqualValues(t, 4, record["frames"])
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"":        InfoLevel,
		"debug":   DebugLevel,
		"WARN":    WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
	} {
		got, err := ParseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("json")
	assert.NoError(t, err)
	assert.Equal(t, TypeJSON, typ)

	_, err = ParseType("xml")
	assert.Error(t, err)
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))
	assert.Equal(t, DefaultLogger, OrDiscard(DefaultLogger))
}
