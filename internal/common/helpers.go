package common

import (
	"github.com/AlexZinkM/keyvault/internal/model"
)

const (
	longKeyLen     = 20 // keys longer than this show 10 chars on each side
	longKeyReveal  = 10
	shortKeyReveal = 6
)

// MaskKey shortens a private key for display so it never appears in full in logs.
// Keys over 20 characters keep 10 characters on each side, shorter ones keep 6.
func MaskKey(key string) string {
	n := shortKeyReveal
	if len(key) > longKeyLen {
		n = longKeyReveal
	}
	// Too short to hide anything
	if len(key) <= 2*n {
		return "***"
	}
	return key[:n] + "..." + key[len(key)-n:]
}

// SchemeCounts tallies keys per scheme.
type SchemeCounts struct {
	ETH int
	SOL int
}

// Add counts one key of the given scheme
func (c *SchemeCounts) Add(s model.Scheme) {
	switch s {
	case model.SchemeETH:
		c.ETH++
	case model.SchemeSOL:
		c.SOL++
	}
}

// Total returns the number of counted keys
func (c SchemeCounts) Total() int {
	return c.ETH + c.SOL
}
