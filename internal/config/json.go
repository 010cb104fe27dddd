package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type clientJSONConfig struct {
	Ensemble struct {
		Servers        []string `json:"servers"`
		Username       string   `json:"username"`
		Password       string   `json:"password"`
		SessionTimeout Duration `json:"session_timeout"`
	} `json:"ensemble,omitempty"`

	Watch struct {
		Path          string `json:"path"`
		DecryptionKey string `json:"decryption_key"`
	} `json:"watch,omitempty"`

	Retry struct {
		InitialDelay Duration `json:"initial_delay"`
		MaxDelay     Duration `json:"max_delay"`
		Jitter       Duration `json:"jitter"`
		MaxAttempts  uint64   `json:"max_attempts"`
	} `json:"retry,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg clientJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Ensemble: Ensemble{
			Servers:        jsonCfg.Ensemble.Servers,
			Username:       jsonCfg.Ensemble.Username,
			Password:       jsonCfg.Ensemble.Password,
			SessionTimeout: time.Duration(jsonCfg.Ensemble.SessionTimeout),
		},
		Watch: Watch{
			Path:          jsonCfg.Watch.Path,
			DecryptionKey: jsonCfg.Watch.DecryptionKey,
		},
		Retry: Retry{
			InitialDelay: time.Duration(jsonCfg.Retry.InitialDelay),
			MaxDelay:     time.Duration(jsonCfg.Retry.MaxDelay),
			Jitter:       time.Duration(jsonCfg.Retry.Jitter),
			MaxAttempts:  jsonCfg.Retry.MaxAttempts,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
