package keys

import (
	"fmt"

	"github.com/AlexZinkM/keyvault/ethereum"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/solana"
)

// Address derives the public address of a decrypted private key.
func Address(scheme model.Scheme, privateKey string) (string, error) {
	switch scheme {
	case model.SchemeETH:
		return ethereum.AddressFromPrivateKey(privateKey)
	case model.SchemeSOL:
		return solana.AddressFromPrivateKey(privateKey)
	}
	return "", fmt.Errorf("%w: unsupported scheme %q", model.ErrInvalidKey, scheme)
}
