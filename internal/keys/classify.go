// Package keys recognizes the supported private key encodings and routes a
// decrypted key to the address derivation of its scheme.
package keys

import (
	"strings"

	"github.com/AlexZinkM/keyvault/internal/model"
)

const (
	ethHexLen = 64

	// Base58 expanded Solana secret keys are 87-88 characters in practice
	solMinLen = 80
	solMaxLen = 90

	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// Classify determines which supported encoding raw matches.
// The hex check runs first: a 64-character hex string is always ETH.
func Classify(raw string) (model.ClassifiedKey, bool) {
	trimmed := strings.TrimSpace(raw)

	ethKey := strings.TrimPrefix(trimmed, "0x")
	if len(ethKey) == ethHexLen && isHex(ethKey) {
		return model.ClassifiedKey{Scheme: model.SchemeETH, Normalized: ethKey}, true
	}

	if len(trimmed) >= solMinLen && len(trimmed) <= solMaxLen && isBase58(trimmed) {
		return model.ClassifiedKey{Scheme: model.SchemeSOL, Normalized: trimmed}, true
	}

	return model.ClassifiedKey{}, false
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func isBase58(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base58Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
