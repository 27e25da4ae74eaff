package config

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// envPrefix is prepended to every variable name, e.g. KEYVAULT_STORE_FILE.
const envPrefix = "KEYVAULT"

// Config contains all configuration parameters for the application.
// Note: the password is never part of the configuration, it is prompted at runtime.
type Config struct {
	InputFile  string `envconfig:"INPUT_FILE" default:"privateKey.txt"`
	StoreFile  string `envconfig:"STORE_FILE" default:".env"`
	OutputFile string `envconfig:"OUTPUT_FILE" default:"decrypted.csv"`
	QRDir      string `envconfig:"QR_DIR"`
	Workers    int    `envconfig:"WORKERS" default:"1"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("failed to process config: %s_WORKERS must be at least 1, got %d", envPrefix, c.Workers)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// PromptForPassword prompts the operator for a password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use for security.
func PromptForPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, model.ErrNotTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, model.ErrEmptyPassword
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}

// TerminalPassword reads passwords from the controlling terminal.
type TerminalPassword struct{}

// ReadPassword implements the vault's password provider.
func (TerminalPassword) ReadPassword(prompt string) ([]byte, error) {
	return PromptForPassword(prompt)
}
