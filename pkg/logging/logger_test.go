package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, Setup("warn"))
	require.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	require.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))
}

func TestSetup_InvalidLevel(t *testing.T) {
	require.Error(t, Setup("loud"))
}
