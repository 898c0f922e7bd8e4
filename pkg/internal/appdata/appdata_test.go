package appdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fakeEnv(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func fakeHome(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func TestLocalDataDirPerPlatform(t *testing.T) {
	home := filepath.Join("/", "home", "me")

	cases := []struct {
		goos string
		env  map[string]string
		want string
	}{
		{"linux", nil, filepath.Join(home, ".local", "share", "com.quill.notes")},
		{"linux", map[string]string{"XDG_DATA_HOME": "/data"}, filepath.Join("/data", "com.quill.notes")},
		{"linux", map[string]string{"XDG_DATA_HOME": "relative"}, filepath.Join(home, ".local", "share", "com.quill.notes")},
		{"darwin", nil, filepath.Join(home, "Library", "Application Support", "com.quill.notes")},
		{"windows", map[string]string{"LOCALAPPDATA": "/appdata/local"}, filepath.Join("/appdata/local", "com.quill.notes")},
	}
	for _, tc := range cases {
		got, err := localDataDir(tc.goos, fakeEnv(tc.env), fakeHome(home), "com.quill.notes")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.goos, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.goos, tc.want, got)
		}
	}
}

func TestLocalDataDirErrors(t *testing.T) {
	if _, err := localDataDir("linux", fakeEnv(nil), fakeHome("/h"), ""); err == nil {
		t.Fatalf("expected error for empty app id")
	}
	if _, err := localDataDir("windows", fakeEnv(nil), fakeHome("/h"), "app"); err == nil {
		t.Fatalf("expected error without LOCALAPPDATA")
	}
	noHome := func() (string, error) { return "", errors.New("no home") }
	if _, err := localDataDir("linux", fakeEnv(nil), noHome, "app"); err == nil {
		t.Fatalf("expected home lookup error")
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "skins")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("first EnsureDir: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("second EnsureDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, got %v %v", info, err)
	}
}
