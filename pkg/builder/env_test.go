package builder

import (
	"os"
	"reflect"
	"testing"
)

func TestEnvOr(t *testing.T) {
	const key = "QUILL_TEST_ENV_OR"
	_ = os.Unsetenv(key)
	if got := EnvOr(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv(key, `"  value  "`)
	if got := EnvOr(key, "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestEnvIntOr(t *testing.T) {
	const key = "QUILL_TEST_ENV_INT"
	_ = os.Unsetenv(key)
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default int, got %d", got)
	}

	t.Setenv(key, "12")
	if got := EnvIntOr(key, 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}

	t.Setenv(key, "not-int")
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default on bad int, got %d", got)
	}
}

func TestEnvBoolOr(t *testing.T) {
	const key = "QUILL_TEST_ENV_BOOL"
	t.Setenv(key, "false")
	if got := EnvBoolOr(key, true); got {
		t.Fatal("expected false")
	}
	t.Setenv(key, "maybe")
	if got := EnvBoolOr(key, true); !got {
		t.Fatal("expected default on bad bool")
	}
}

func TestEnvListOr(t *testing.T) {
	const key = "QUILL_TEST_ENV_LIST"
	t.Setenv(key, " http://a , ,http://b")
	want := []string{"http://a", "http://b"}
	if got := EnvListOr(key, nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("EnvListOr = %v, want %v", got, want)
	}
}

func TestLoadHostConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUILL_DATA_DIR", dir)
	t.Setenv("QUILL_BRIDGE_TOKEN", "")
	t.Setenv("QUILL_COMPRESSION_MIN_BYTES", "64")
	t.Setenv("QUILL_STORAGE_FOLDER", "themes")

	cfg, err := LoadHostConfig()
	if err != nil {
		t.Fatalf("LoadHostConfig: %v", err)
	}
	if cfg.DataDir != dir || cfg.StorageFolder != "themes" || cfg.CompressionMinBytes != 64 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BridgeToken == "" {
		t.Fatal("expected a generated bridge token")
	}
	if cfg.BridgeAddress != "127.0.0.1:0" || !cfg.AuthRequired {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
