package calcspec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashing. The version suffix enables future
// algorithm migration without colliding with existing stored hashes.
const (
	DomainCalculation = "autostore/calculation/v1"
	DomainGeometry    = "autostore/geometry/v1"
)

// HashWithDomain computes a SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest canonicalizes a value and returns its calculation-domain hash as
// a 64-character hexadecimal string. Returns an error wrapping
// *EncodingError if the value cannot be canonicalized.
func Digest(v Value) (string, error) {
	return DigestDomain(DomainCalculation, v)
}

// DigestDomain is Digest under an explicit domain prefix.
func DigestDomain(domain string, v Value) (string, error) {
	canonical, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return HashWithDomain(domain, canonical), nil
}
