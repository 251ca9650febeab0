package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tilecheck/internal/config"
)

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
		enabled zapcore.Level
	}{
		{name: "json info", cfg: config.LoggingConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "json error", cfg: config.LoggingConfig{Level: "error", Format: "json"}, enabled: zapcore.ErrorLevel},
		{name: "unknown level", cfg: config.LoggingConfig{Level: "trace", Format: "json"}, wantErr: true},
		{name: "unknown format", cfg: config.LoggingConfig{Level: "info", Format: "xml"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := NewLogger(tc.cfg, false)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
		})
	}
}

func TestNewLogger_LevelFiltersBelow(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "console"}, true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_ConsoleColorFollowsFlag(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "console"}

	var plain bytes.Buffer
	logger, err := newLogger(cfg, false, zapcore.AddSync(&plain))
	require.NoError(t, err)
	logger.Warn("map invalid")
	assert.Contains(t, plain.String(), "WARN")
	assert.NotContains(t, plain.String(), "\x1b[")

	var colored bytes.Buffer
	logger, err = newLogger(cfg, true, zapcore.AddSync(&colored))
	require.NoError(t, err)
	logger.Warn("map invalid")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestNewLogger_JSONIgnoresColor(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, true, zapcore.AddSync(&buf))
	require.NoError(t, err)
	logger.Info("map valid")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "map valid", entry["msg"])
}
