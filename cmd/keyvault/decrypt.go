package main

import (
	"fmt"
	"io"
	"os"

	"github.com/AlexZinkM/keyvault/internal/common"
	"github.com/AlexZinkM/keyvault/internal/config"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const previewRows = 5

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypts the store into a CSV table of keys and addresses",
	Long: `Decrypts every record of the store, derives its address and writes
Index,Chain,PrivateKey,Address rows to the output file. Records that cannot be
decrypted are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		opts := vault.DecryptOptions{
			StorePath:  stringFlag(cmd, "store", cfg.StoreFile),
			OutputPath: stringFlag(cmd, "output", cfg.OutputFile),
			QRDir:      stringFlag(cmd, "qr-dir", cfg.QRDir),
		}

		res, err := newVault().Decrypt(cmd.Context(), opts)
		if err != nil {
			return err
		}

		printDecryptSummary(os.Stdout, res)
		return nil
	},
}

func init() {
	decryptCmd.Flags().StringP("store", "s", "", "store file to read (default from KEYVAULT_STORE_FILE or .env)")
	decryptCmd.Flags().StringP("output", "o", "", "CSV file to write (default from KEYVAULT_OUTPUT_FILE or decrypted.csv)")
	decryptCmd.Flags().String("qr-dir", "", "directory for address QR codes (default from KEYVAULT_QR_DIR, disabled when empty)")
}

func printDecryptSummary(w io.Writer, res *vault.DecryptResult) {
	fmt.Fprintf(w, "%s CSV file written: %s\n", color.GreenString("✓"), color.YellowString(res.OutputPath))
	if len(res.QRFiles) > 0 {
		fmt.Fprintf(w, "%s %d address QR codes written\n", color.GreenString("✓"), len(res.QRFiles))
	}
	fmt.Fprintf(w, "%s ETH keys: %d, SOL keys: %d, total: %d\n",
		color.CyanString("→"), res.Counts.ETH, res.Counts.SOL, res.Counts.Total())
	if len(res.Failed) > 0 {
		fmt.Fprintf(w, "%s Failed records: %v\n", color.YellowString("!"), res.Failed)
	}

	fmt.Fprintln(w, color.YellowString("Preview:"))
	for _, line := range previewLines(res.Records) {
		fmt.Fprintln(w, "  "+line)
	}
}

// previewLines renders the first rows with masked keys.
func previewLines(records []model.DecryptedRecord) []string {
	n := min(len(records), previewRows)
	lines := make([]string, 0, n+1)
	for _, r := range records[:n] {
		lines = append(lines, fmt.Sprintf("%s key %d: %s -> %s", r.Scheme, r.Index, common.MaskKey(r.PrivateKey), r.Address))
	}
	if rest := len(records) - n; rest > 0 {
		lines = append(lines, fmt.Sprintf("... %d more, see the output file", rest))
	}
	return lines
}
