package ethereum

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromPrivateKey_KnownVectors(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{strings.Repeat("0", 63) + "1", "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{strings.Repeat("0", 63) + "2", "0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF"},
		{"4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318", "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"},
		{"0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318", "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"},
		{"4C0883A69102937D6231471B5DBB6204FE5129617082792AE468D01A3F362318", "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"},
	}
	for _, tt := range tests {
		got, err := AddressFromPrivateKey(tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got)
	}
}

func TestAddressFromPrivateKey_Checksummed(t *testing.T) {
	got, err := AddressFromPrivateKey(strings.Repeat("a", 64))
	require.NoError(t, err)

	assert.True(t, common.IsHexAddress(got))
	assert.Equal(t, common.HexToAddress(got).Hex(), got)
	assert.True(t, strings.HasPrefix(got, "0x"))
}

func TestAddressFromPrivateKey_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero scalar":  strings.Repeat("0", 64),
		"curve order":  "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		"above order":  strings.Repeat("f", 64),
		"too short":    strings.Repeat("a", 62),
		"too long":     strings.Repeat("a", 66),
		"not hex":      strings.Repeat("g", 64),
		"empty string": "",
	}
	for name, key := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := AddressFromPrivateKey(key)
			assert.ErrorIs(t, err, model.ErrInvalidKey)
		})
	}
}
