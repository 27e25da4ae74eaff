package report

import (
	"fmt"
	"path/filepath"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// AddressQR generates a PNG QR code of an address.
func AddressQR(address string) ([]byte, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// QRFileName is the file an address QR code is written to inside dir.
func QRFileName(dir string, r model.DecryptedRecord) string {
	return filepath.Join(dir, fmt.Sprintf("%d_%s.png", r.Index, r.Scheme))
}
