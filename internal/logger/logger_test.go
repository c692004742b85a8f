package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := New("info", &buf)
	lg.Debug("hidden")
	lg.Info("root path", "path", "/proj")
	lg.Error("boom")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `msg="root path" path=/proj`)
	require.Contains(t, out, "msg=boom")
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	lg := New("DEBUG", &buf)
	lg.Debug("scan", "files", 3)
	require.Contains(t, buf.String(), "files=3")
}

func TestLogger_UnknownLevelKeepsErrorsOnly(t *testing.T) {
	var buf bytes.Buffer
	lg := New("loud", &buf)
	lg.Info("quiet")
	lg.Error("kept")
	require.NotContains(t, buf.String(), "quiet")
	require.Contains(t, buf.String(), "kept")
}
