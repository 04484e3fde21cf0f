package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", "text", &buf)

	log.Info("hidden")
	log.Warn("shown", "attempts", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "attempts=2")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New("DEBUG", "json", &buf).Debug("code sent", "email", "a@gmail.com")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "code sent", rec["msg"])
	assert.Equal(t, "a@gmail.com", rec["email"])
}

func TestNewUnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", "", &buf)
	log.Debug("dropped")
	log.Info("kept")
	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.True(t, strings.Contains(buf.String(), "kept"))
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
