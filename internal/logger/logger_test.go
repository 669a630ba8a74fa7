package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

// capture redirects the standard logger into a buffer for the duration of the test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	prevOut, prevFormatter, prevLevel := std.Out, std.Formatter, std.GetLevel()
	std.SetOutput(&buf)
	std.SetFormatter(&logrus.JSONFormatter{})
	std.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFormatter)
		std.SetLevel(prevLevel)
	})
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"verbose": logrus.InfoLevel,
		"":        logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestWithContextPrefersEmail(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), "email", "alice@example.com") //nolint:staticcheck
	ctx = context.WithValue(ctx, "user_id", "42")                                //nolint:staticcheck
	ctx = context.WithValue(ctx, "request_id", "req-1")                          //nolint:staticcheck
	WithContext(ctx).Info("hello")

	entry := decode(t, buf)
	assert.Equal(t, "alice@example.com", entry["user"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestWithContextFallsBackToUserID(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), "user_id", "42") //nolint:staticcheck
	WithContext(ctx).Info("hello")

	entry := decode(t, buf)
	assert.Equal(t, "42", entry["user"])
	assert.NotContains(t, entry, "request_id")
}

func TestWithContextUnknownUser(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), ctxKey("email"), "ignored")
	WithContext(ctx).Warn("anonymous")

	entry := decode(t, buf)
	assert.Equal(t, "unknown", entry["user"])
	assert.Equal(t, "warning", entry["level"])
}

func TestFieldHelpersChain(t *testing.T) {
	buf := capture(t)

	New().
		WithField("table", "projects").
		WithFields(map[string]interface{}{"count": 3}).
		WithError(assert.AnError).
		Error("failed")

	entry := decode(t, buf)
	assert.Equal(t, "projects", entry["table"])
	assert.EqualValues(t, 3, entry["count"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}
