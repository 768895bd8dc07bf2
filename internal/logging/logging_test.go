package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info json", func(t *testing.T) {
		logger, err := New("", "", false)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		logger, err := New("error", "text", true)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("explicit level", func(t *testing.T) {
		logger, err := New("warn", "json", false)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("unknown level rejected", func(t *testing.T) {
		_, err := New("loud", "json", false)
		assert.Error(t, err)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		_, err := New("info", "xml", false)
		assert.Error(t, err)
	})
}
