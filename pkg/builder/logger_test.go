package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewHostLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "host.log")
	logger, err := NewHostLogger(HostConfig{AppID: "com.quill.test", LogLevel: "debug", LogFile: path})
	if err != nil {
		t.Fatalf("NewHostLogger: %v", err)
	}
	logger.Debug("host logger ready", "component", "test")
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"msg":"host logger ready"`, `"app_id":"com.quill.test"`, `"log_schema":"` + LogSchemaID + `"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
}

func TestNewHostLogger_BadFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewHostLogger(HostConfig{LogFile: dir}); err == nil {
		t.Fatal("expected an error opening a directory as a log file")
	}
}
