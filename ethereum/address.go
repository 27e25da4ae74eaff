// Package ethereum derives Ethereum addresses from raw secp256k1 private keys.
package ethereum

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/ethereum/go-ethereum/crypto"
)

// PrivateKeyHexLen is the length of a hex encoded 32-byte scalar.
const PrivateKeyHexLen = 64

// AddressFromPrivateKey returns the EIP-55 checksummed address of a hex private key.
// A leading 0x is tolerated; stores written by this tool never contain one.
func AddressFromPrivateKey(privateKeyHex string) (string, error) {
	hexKey := strings.TrimPrefix(privateKeyHex, "0x")
	if len(hexKey) != PrivateKeyHexLen {
		return "", fmt.Errorf("%w: expected %d hex characters, got %d", model.ErrInvalidKey, PrivateKeyHexLen, len(hexKey))
	}

	// HexToECDSA rejects bad hex, a zero scalar and scalars >= the curve order
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidKey, err)
	}
	defer key.D.SetInt64(0)

	// Keccak-256 of X||Y, last 20 bytes
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}
