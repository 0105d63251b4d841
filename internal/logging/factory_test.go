package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(FormatJSON, "info", &buf)
	require.NoError(t, err)

	l.Debug(context.Background(), "hidden")
	l.Info(context.Background(), "shown", "receipt_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line expected: %s", buf.String())
	assert.Equal(t, "shown", entry["msg"])
	assert.EqualValues(t, 7, entry["receipt_id"])
}

func TestNew_Zap(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(FormatZap, "warn", &buf)
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "abc")
	l.Info(ctx, "hidden")
	l.With("module", "store").Warn(ctx, "slow query", "ms", 250)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line expected: %s", buf.String())
	assert.Equal(t, "slow query", entry["msg"])
	assert.Equal(t, "store", entry["module"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.EqualValues(t, 250, entry["ms"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(FormatText, "loud", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(FormatZap, "loud", &bytes.Buffer{})
	assert.Error(t, err)
}
