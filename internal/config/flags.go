package config

import (
	"flag"
	"strings"
	"time"
)

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-s/-servers comma-separated ensemble addresses host:port[,host:port...]
//	-u/-username digest authentication username
//	-p/-password digest authentication password
//	-session-timeout ensemble session timeout (e.g., "30s")
//	-path watched configuration node path
//	-key hex-encoded 256-bit decryption key
//	-retry-initial-delay first reconnect backoff delay (e.g., "500ms")
//	-retry-max-delay backoff cap (e.g., "30s")
//	-retry-jitter random spread added to each delay (e.g., "100ms")
//	-retry-max-attempts consecutive failed cycles before giving up (0 = unbounded)
//	-c/-config json file path with configs
func parseFlags(args []string) (*ClientConfig, error) {
	var servers string
	var username string
	var password string
	var sessionTimeout time.Duration
	var nodePath string
	var decryptionKey string
	var retryInitialDelay time.Duration
	var retryMaxDelay time.Duration
	var retryJitter time.Duration
	var retryMaxAttempts uint64
	var jsonConfigPath string

	fs := flag.NewFlagSet("zclient", flag.ContinueOnError)
	fs.StringVar(&servers, "s", "", "Ensemble addresses host:port[,host:port...]")
	fs.StringVar(&servers, "servers", "", "Ensemble addresses (alias)")
	fs.StringVar(&username, "u", "", "Digest auth username")
	fs.StringVar(&username, "username", "", "Digest auth username (alias)")
	fs.StringVar(&password, "p", "", "Digest auth password")
	fs.StringVar(&password, "password", "", "Digest auth password (alias)")
	fs.DurationVar(&sessionTimeout, "session-timeout", 0, "Session timeout (e.g., 30s)")
	fs.StringVar(&nodePath, "path", "", "Watched configuration node path")
	fs.StringVar(&decryptionKey, "key", "", "Hex-encoded 256-bit decryption key")
	fs.DurationVar(&retryInitialDelay, "retry-initial-delay", 0, "First reconnect delay (e.g., 500ms)")
	fs.DurationVar(&retryMaxDelay, "retry-max-delay", 0, "Reconnect delay cap (e.g., 30s)")
	fs.DurationVar(&retryJitter, "retry-jitter", 0, "Reconnect delay jitter (e.g., 100ms)")
	fs.Uint64Var(&retryMaxAttempts, "retry-max-attempts", 0, "Failed cycles before giving up (0 = unbounded)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &ClientConfig{
		Ensemble: Ensemble{
			Servers:        splitServers(servers),
			Username:       username,
			Password:       password,
			SessionTimeout: sessionTimeout,
		},
		Watch: Watch{
			Path:          nodePath,
			DecryptionKey: decryptionKey,
		},
		Retry: Retry{
			InitialDelay: retryInitialDelay,
			MaxDelay:     retryMaxDelay,
			Jitter:       retryJitter,
			MaxAttempts:  retryMaxAttempts,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitServers splits a comma-separated address list, trimming whitespace and
// dropping empty items. Returns nil for an empty input so the flag source
// stays a zero value during merging.
func splitServers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	servers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			servers = append(servers, p)
		}
	}
	return servers
}
