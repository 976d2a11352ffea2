package applog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/untillpro/goutils/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.TLogLevel
		wantErr bool
	}{
		{"error", logger.LogLevelError, false},
		{"WARNING", logger.LogLevelWarning, false},
		{" info ", logger.LogLevelInfo, false},
		{"debug", logger.LogLevelVerbose, false},
		{"none", logger.LogLevelNone, false},
		{"loud", logger.LogLevelNone, true},
		{"", logger.LogLevelNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DELECTABLE_LOG_LEVEL", "")
	t.Setenv("DELECTABLE_LOG_FILE", "")
	cfg := ConfigFromEnv("/data/delectable/delectable.db")
	assert.Equal(t, "warning", cfg.Level)
	assert.Equal(t, filepath.Join("/data/delectable", "delectable.log"), cfg.File)

	t.Setenv("DELECTABLE_LOG_LEVEL", "verbose")
	t.Setenv("DELECTABLE_LOG_FILE", "/tmp/x.log")
	cfg = ConfigFromEnv("/data/delectable/delectable.db")
	assert.Equal(t, "verbose", cfg.Level)
	assert.Equal(t, "/tmp/x.log", cfg.File)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Level: "info", File: "a.log"}.Validate())
	assert.Error(t, Config{Level: "chatty", File: "a.log"}.Validate())
	assert.Error(t, Config{Level: "info"}.Validate())
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	restore, err := ToFile(Config{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("catalog loaded")
	logger.Verbose("not at this level")
	restore()
	logger.Info("after restore")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog loaded")
	assert.NotContains(t, string(data), "not at this level")
	assert.NotContains(t, string(data), "after restore")
}

func TestToFileRejectsBadLevel(t *testing.T) {
	_, err := ToFile(Config{Level: "shout", File: filepath.Join(t.TempDir(), "a.log")})
	assert.Error(t, err)
}
