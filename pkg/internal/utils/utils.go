package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// GenerateUniqueHash returns a 64-character hex identifier for component metadata.
func GenerateUniqueHash() string {
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().UnixNano()))
	id := uuid.New()
	copy(buf[8:], id[:])
	sum := sha256.Sum256(buf[:])
	return hex.EncodeToString(sum[:])
}

// NewToken returns a fresh shared secret for loopback authentication.
func NewToken() string {
	return uuid.NewString()
}
