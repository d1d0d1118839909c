package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprint renders the content hash the gate compares, lowercase hex sha256
func fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
