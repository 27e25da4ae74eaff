package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// SecretKeyLen is the expanded secret key length: 32-byte seed followed by its 32-byte public key.
// Wallets that export only the 32-byte seed are not supported.
const SecretKeyLen = ed25519.PrivateKeySize

// AddressFromPrivateKey returns the Base58 address of a Base58 encoded 64-byte secret key.
func AddressFromPrivateKey(secret string) (string, error) {
	decoded, err := base58.Decode(secret)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base58: %v", model.ErrInvalidKey, err)
	}
	defer clear(decoded)

	if len(decoded) != SecretKeyLen {
		return "", fmt.Errorf("%w: solana secret key must be %d bytes, got %d", model.ErrInvalidKey, SecretKeyLen, len(decoded))
	}

	// The trailing half must be the public key of the seed, otherwise the
	// address would not belong to the key we hand back.
	derived := ed25519.NewKeyFromSeed(decoded[:ed25519.SeedSize])
	defer clear(derived)
	if !bytes.Equal(derived[ed25519.SeedSize:], decoded[ed25519.SeedSize:]) {
		return "", fmt.Errorf("%w: public key does not match seed", model.ErrInvalidKey)
	}

	return solana.PublicKeyFromBytes(decoded[ed25519.SeedSize:]).String(), nil
}
