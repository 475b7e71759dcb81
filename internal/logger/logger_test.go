package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	for _, mode := range []string{"prod", "Production", "dev", ""} {
		log, err := New(mode, false)
		require.NoError(t, err, mode)
		assert.False(t, log.Core().Enabled(zap.InfoLevel), mode)
		assert.True(t, log.Core().Enabled(zap.WarnLevel), mode)

		log, err = New(mode, true)
		require.NoError(t, err, mode)
		assert.True(t, log.Core().Enabled(zap.DebugLevel), mode)
	}
}
