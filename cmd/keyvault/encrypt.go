package main

import (
	"fmt"

	"github.com/AlexZinkM/keyvault/internal/config"
	"github.com/AlexZinkM/keyvault/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypts the private keys of the input file into the store",
	Long: `Reads one private key per line (ETH: 64 hex characters with optional 0x,
SOL: Base58 secret key), encrypts every recognized key and replaces the store.
Unrecognized lines are skipped; their index stays unused in the store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		opts := vault.EncryptOptions{
			InputPath: stringFlag(cmd, "input", cfg.InputFile),
			StorePath: stringFlag(cmd, "store", cfg.StoreFile),
		}

		res, err := newVault().Encrypt(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("%s Salt and %d encrypted keys saved to %s\n",
			color.GreenString("✓"), res.Counts.Total(), color.YellowString(res.StorePath))
		fmt.Printf("%s ETH keys: %d, SOL keys: %d\n", color.CyanString("→"), res.Counts.ETH, res.Counts.SOL)
		if len(res.Skipped) > 0 {
			fmt.Printf("%s Skipped lines: %v\n", color.YellowString("!"), res.Skipped)
		}
		fmt.Printf("%s Store format: ENCRYPTED_KEY_<index>=<ciphertext>:<iv>:<chain>\n", color.CyanString("→"))
		fmt.Printf("%s Securely delete %s now\n", color.CyanString("→"), color.YellowString(opts.InputPath))
		return nil
	},
}

func init() {
	encryptCmd.Flags().StringP("input", "i", "", "plain text key list (default from KEYVAULT_INPUT_FILE or privateKey.txt)")
	encryptCmd.Flags().StringP("store", "s", "", "store file to write (default from KEYVAULT_STORE_FILE or .env)")
}
