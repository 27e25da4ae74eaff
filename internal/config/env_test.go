package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	for _, name := range []string{"INPUT_FILE", "STORE_FILE", "OUTPUT_FILE", "QR_DIR", "WORKERS", "LOG_LEVEL"} {
		key := envPrefix + "_" + name
		t.Setenv(key, "") // restores the original value after the test
		require.NoError(t, os.Unsetenv(key))
	}

	require.NoError(t, Init())
	assert.Equal(t, &Config{
		InputFile:  "privateKey.txt",
		StoreFile:  ".env",
		OutputFile: "decrypted.csv",
		Workers:    1,
		LogLevel:   "info",
	}, Get())
}

func TestInit_FromEnvironment(t *testing.T) {
	t.Setenv("KEYVAULT_INPUT_FILE", "keys.txt")
	t.Setenv("KEYVAULT_STORE_FILE", "vault.env")
	t.Setenv("KEYVAULT_OUTPUT_FILE", "out.csv")
	t.Setenv("KEYVAULT_QR_DIR", "qr")
	t.Setenv("KEYVAULT_WORKERS", "4")
	t.Setenv("KEYVAULT_LOG_LEVEL", "debug")

	require.NoError(t, Init())
	c := Get()
	assert.Equal(t, &Config{
		InputFile:  "keys.txt",
		StoreFile:  "vault.env",
		OutputFile: "out.csv",
		QRDir:      "qr",
		Workers:    4,
		LogLevel:   "debug",
	}, c)
}

func TestInit_RejectsBadWorkers(t *testing.T) {
	t.Setenv("KEYVAULT_WORKERS", "0")
	assert.Error(t, Init())

	t.Setenv("KEYVAULT_WORKERS", "many")
	assert.Error(t, Init())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	assert.Panics(t, func() { Get() })
}
