package main

import (
	"fmt"

	"github.com/AlexZinkM/keyvault/internal/config"
	"github.com/AlexZinkM/keyvault/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypts the store under a new password",
	Long: `Decrypts every record with the current password and encrypts them again
under a new password and a fresh salt. The store is only replaced when every
record could be decrypted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := vault.RekeyOptions{
			StorePath: stringFlag(cmd, "store", config.Get().StoreFile),
		}

		res, err := newVault().Rekey(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("%s %d keys re-encrypted in %s (ETH: %d, SOL: %d)\n",
			color.GreenString("✓"), res.Counts.Total(), color.YellowString(res.StorePath), res.Counts.ETH, res.Counts.SOL)
		return nil
	},
}

func init() {
	rekeyCmd.Flags().StringP("store", "s", "", "store file to re-encrypt (default from KEYVAULT_STORE_FILE or .env)")
}
