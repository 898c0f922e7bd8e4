package internallogger

import (
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

// pathRedactor replaces a home directory prefix with "~". A nil redactor is a no-op.
type pathRedactor struct {
	home   string
	prefix string
}

func newPathRedactor(home string) *pathRedactor {
	home = filepath.Clean(home)
	if home == "." || home == string(filepath.Separator) || !filepath.IsAbs(home) {
		return nil
	}
	return &pathRedactor{home: home, prefix: home + string(filepath.Separator)}
}

func (r *pathRedactor) path(s string) string {
	if r == nil {
		return s
	}
	if s == r.home {
		return "~"
	}
	if strings.HasPrefix(s, r.prefix) {
		return "~" + s[len(r.home):]
	}
	return s
}

func (r *pathRedactor) paths(in []string) []string {
	if r == nil {
		return in
	}
	return utils.Map(in, r.path)
}

// text redacts every occurrence inside free-form text such as OS error messages.
func (r *pathRedactor) text(s string) string {
	if r == nil {
		return s
	}
	return strings.ReplaceAll(s, r.prefix, "~"+string(filepath.Separator))
}
