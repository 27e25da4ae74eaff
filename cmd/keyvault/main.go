// keyvault encrypts a list of ETH and SOL private keys into a password
// protected store and decrypts them back together with their addresses.
//
// Usage:
//
//	keyvault encrypt [--input privateKey.txt] [--store .env]
//	keyvault decrypt [--store .env] [--output decrypted.csv] [--qr-dir dir]
//	keyvault rekey   [--store .env]
//
// The password is always read from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlexZinkM/keyvault/internal/config"
	"github.com/AlexZinkM/keyvault/internal/store"
	"github.com/AlexZinkM/keyvault/internal/vault"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	verbose bool
	quiet   bool
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "keyvault",
	Short: "Password protected batch vault for ETH and SOL private keys",
	Long: `keyvault encrypts private keys (ETH hex, SOL Base58) with AES-256-CBC under a
PBKDF2 derived key and restores them together with their public addresses.

Run it offline and delete the plain text key list once the store is written.
Configuration is read from KEYVAULT_* environment variables; flags take precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		if err := setupLogging(config.Get().LogLevel); err != nil {
			return err
		}
		if !cmd.Flags().Changed("workers") {
			workers = config.Get().Workers
		}
		if !quiet {
			printBanner()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not print the banner")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "records processed in parallel")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(rekeyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗")+" "+err.Error())
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)

	formatter := new(prefixed.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)
	logrus.SetOutput(os.Stderr)
	return nil
}

func printBanner() {
	fmt.Fprintln(os.Stderr)
	figure.NewColorFigure("keyvault", "small", "cyan", true).Print()
	fmt.Fprintln(os.Stderr, color.YellowString("  Keep the password safe: keys cannot be recovered without it."))
	fmt.Fprintln(os.Stderr)
}

// newVault wires the OS file system and the terminal prompt into a Vault.
func newVault() *vault.Vault {
	return vault.New(store.FileSystem{}, config.TerminalPassword{}, vault.Options{
		Workers:  workers,
		Log:      logrus.WithField("prefix", "vault"),
		OnDerive: deriveSpinner,
	})
}

// stringFlag returns the flag value when set on the command line, def otherwise.
func stringFlag(cmd *cobra.Command, name, def string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return def
}
