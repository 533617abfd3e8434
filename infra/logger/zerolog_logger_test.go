package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestSetFormatConsole(t *testing.T) {
	SetFormat("console")
	defer SetFormat("")

	var buf bytes.Buffer
	l := &ZerologLogger{log: newZerolog("fmt", &buf)}
	l.Infof("hello")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, `{"level"`)
}

func TestSetFormatJSONOverridesEnv(t *testing.T) {
	require.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { require.NoError(t, os.Unsetenv("APP_ENV")) }()
	SetFormat("json")
	defer SetFormat("")

	var buf bytes.Buffer
	l := &ZerologLogger{log: newZerolog("fmt", &buf)}
	l.Infof("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fmt", line["component"])
	assert.Equal(t, "hello", line["message"])
}
