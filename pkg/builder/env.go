package builder

import (
	"os"
	"strconv"
	"strings"

	"github.com/joeydtaylor/quill/pkg/internal/appdata"
	"github.com/joeydtaylor/quill/pkg/internal/host"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvBoolOr returns the parsed bool env value or def on empty/parse failure.
func EnvBoolOr(key string, def bool) bool {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// EnvListOr splits a comma separated env value, dropping blanks.
func EnvListOr(key string, def []string) []string {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	parts := utils.Filter(strings.Split(v, ","), func(s string) bool { return strings.TrimSpace(s) != "" })
	return utils.Map(parts, strings.TrimSpace)
}

// HostConfig is the process configuration of the host binary.
type HostConfig struct {
	AppID               string
	BridgeAddress       string
	BridgeToken         string
	AuthRequired        bool
	LogLevel            string
	LogFile             string
	RedactHome          bool
	DataDir             string
	StorageFolder       string
	CompressionMinBytes int
	AllowedOrigins      []string
}

// LoadHostConfig reads QUILL_* environment variables. The data directory defaults to
// the platform's per-user local data directory for the app ID.
func LoadHostConfig() (HostConfig, error) {
	cfg := HostConfig{
		AppID:               EnvOr("QUILL_APP_ID", host.DefaultAppID),
		BridgeAddress:       EnvOr("QUILL_BRIDGE_ADDRESS", "127.0.0.1:0"),
		BridgeToken:         EnvOr("QUILL_BRIDGE_TOKEN", ""),
		AuthRequired:        EnvBoolOr("QUILL_AUTH_REQUIRED", true),
		LogLevel:            EnvOr("QUILL_LOG_LEVEL", "info"),
		LogFile:             EnvOr("QUILL_LOG_FILE", ""),
		RedactHome:          EnvBoolOr("QUILL_LOG_REDACT_HOME", true),
		DataDir:             EnvOr("QUILL_DATA_DIR", ""),
		StorageFolder:       EnvOr("QUILL_STORAGE_FOLDER", host.DefaultStorageFolder),
		CompressionMinBytes: EnvIntOr("QUILL_COMPRESSION_MIN_BYTES", 1024),
		AllowedOrigins:      EnvListOr("QUILL_ALLOWED_ORIGINS", nil),
	}
	if cfg.BridgeToken == "" {
		cfg.BridgeToken = utils.NewToken()
	}
	if cfg.DataDir == "" {
		dir, err := appdata.LocalDataDir(cfg.AppID)
		if err != nil {
			return cfg, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}
