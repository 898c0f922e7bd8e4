package utils_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joeydtaylor/quill/pkg/internal/utils"
)

func TestGenerateUniqueHash(t *testing.T) {
	a := utils.GenerateUniqueHash()
	b := utils.GenerateUniqueHash()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct hashes")
	}
}

func TestNewToken(t *testing.T) {
	tok := utils.NewToken()
	if _, err := uuid.Parse(tok); err != nil {
		t.Fatalf("expected uuid token, got %q: %v", tok, err)
	}
}
