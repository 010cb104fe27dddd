package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"ensemble": {
			"servers": ["zk1:2181", "zk2:2181"],
			"username": "svc",
			"password": "hunter2",
			"session_timeout": "25s"
		},
		"watch": {
			"path": "/config/app/env",
			"decryption_key": "deadbeef"
		},
		"retry": {
			"initial_delay": "1s",
			"max_delay": "2m",
			"jitter": "150ms",
			"max_attempts": 5
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"zk1:2181", "zk2:2181"}, cfg.Ensemble.Servers)
	assert.Equal(t, "svc", cfg.Ensemble.Username)
	assert.Equal(t, 25*time.Second, cfg.Ensemble.SessionTimeout)
	assert.Equal(t, "/config/app/env", cfg.Watch.Path)
	assert.Equal(t, "deadbeef", cfg.Watch.DecryptionKey)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, 2*time.Minute, cfg.Retry.MaxDelay)
	assert.Equal(t, 150*time.Millisecond, cfg.Retry.Jitter)
	assert.Equal(t, uint64(5), cfg.Retry.MaxAttempts)
	assert.Empty(t, cfg.JSONFilePath, "json source must not point at another json file")
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	path := writeTempJSON(t, "{not json")
	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Duration
	}{
		{"string duration", `"1h30m"`, 90 * time.Minute},
		{"numeric nanoseconds", `1000000000`, time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tc.in), &d))
			assert.Equal(t, tc.want, time.Duration(d))
		})
	}

	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"not a duration"`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(out))
}
