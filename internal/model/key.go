package model

import "fmt"

// Scheme identifies the key scheme a record belongs to.
type Scheme string

const (
	SchemeETH Scheme = "ETH"
	SchemeSOL Scheme = "SOL"
)

// ParseScheme converts a stored scheme tag into a Scheme.
// An empty tag is a store written before scheme tagging existed and maps to ETH.
func ParseScheme(tag string) (Scheme, error) {
	switch Scheme(tag) {
	case "":
		return SchemeETH, nil
	case SchemeETH, SchemeSOL:
		return Scheme(tag), nil
	}
	return "", fmt.Errorf("unknown key scheme %q", tag)
}

// RawEntry is a single non-blank line of the input key list.
type RawEntry struct {
	Index int
	Line  string
}

// ClassifiedKey is a key whose format has been recognized.
// Normalized is exactly the string that gets encrypted: 64 hex characters
// without 0x for ETH, the original Base58 string for SOL.
type ClassifiedKey struct {
	Scheme     Scheme
	Normalized string
}

// DecryptedRecord is a record whose decryption and address derivation both succeeded.
type DecryptedRecord struct {
	Index      int
	Scheme     Scheme
	PrivateKey string
	Address    string
}
