package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesAllGroups(t *testing.T) {
	t.Setenv("ENSEMBLE_SERVERS", "zk1:2181,zk2:2181,zk3:2181")
	t.Setenv("ENSEMBLE_USERNAME", "svc")
	t.Setenv("ENSEMBLE_PASSWORD", "hunter2")
	t.Setenv("ENSEMBLE_SESSION_TIMEOUT", "45s")
	t.Setenv("WATCH_PATH", "/config/app/env")
	t.Setenv("WATCH_DECRYPTION_KEY", "00112233")
	t.Setenv("RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("RETRY_MAX_DELAY", "10s")
	t.Setenv("RETRY_JITTER", "50ms")
	t.Setenv("RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("CONFIG", "/etc/zclient/config.json")

	cfg := &ClientConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, []string{"zk1:2181", "zk2:2181", "zk3:2181"}, cfg.Ensemble.Servers)
	assert.Equal(t, "svc", cfg.Ensemble.Username)
	assert.Equal(t, "hunter2", cfg.Ensemble.Password)
	assert.Equal(t, 45*time.Second, cfg.Ensemble.SessionTimeout)
	assert.Equal(t, "/config/app/env", cfg.Watch.Path)
	assert.Equal(t, "00112233", cfg.Watch.DecryptionKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.Jitter)
	assert.Equal(t, uint64(7), cfg.Retry.MaxAttempts)
	assert.Equal(t, "/etc/zclient/config.json", cfg.JSONFilePath)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ENSEMBLE_SESSION_TIMEOUT", "not-a-duration")

	cfg := &ClientConfig{}
	require.Error(t, parseEnv(cfg))
}

func TestParseEnv_EmptyEnvironmentLeavesZeroValues(t *testing.T) {
	cfg := &ClientConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Ensemble.Servers)
	assert.Zero(t, cfg.Ensemble.SessionTimeout)
	assert.Empty(t, cfg.Watch.Path)
}
