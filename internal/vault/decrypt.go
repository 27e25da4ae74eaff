package vault

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/keyvault/internal/common"
	"github.com/AlexZinkM/keyvault/internal/crypto"
	"github.com/AlexZinkM/keyvault/internal/keys"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/internal/report"

	"github.com/sirupsen/logrus"
)

// DecryptOptions configures the decrypt batch.
type DecryptOptions struct {
	StorePath string

	// OutputPath receives the CSV table. Empty skips writing it.
	OutputPath string

	// QRDir receives one address QR code per row. Empty disables QR output.
	QRDir string
}

// DecryptResult contains the outcome of a decrypt batch.
type DecryptResult struct {
	// Records is the output table in ascending index order.
	Records []model.DecryptedRecord
	Counts  common.SchemeCounts

	// Failed lists the indices of records that could not be decrypted or whose
	// key produced no address.
	Failed []int

	OutputPath string
	QRFiles    []string
}

// Decrypt decrypts every record of the store and derives its address.
//
// Store loading is fatal (ErrStoreNotFound, ErrMissingSalt, ErrInvalidSalt).
// A record that fails to decrypt or to yield an address is logged and skipped.
// Returns ErrNoDecryptableKeys when no record survives.
func (v *Vault) Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	s, salt, err := v.loadStore(opts.StorePath)
	if err != nil {
		return nil, err
	}
	if len(s.Records) == 0 {
		return nil, fmt.Errorf("%w: %s has no encrypted keys", model.ErrNoDecryptableKeys, opts.StorePath)
	}

	password, err := v.readPassword(promptPassword, false)
	if err != nil {
		return nil, err
	}
	defer clear(password)

	key, err := v.deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	rows, failures, err := v.decryptRecords(ctx, key, s.Records)
	if err != nil {
		return nil, err
	}

	result := &DecryptResult{Failed: v.logFailures(failures)}
	for _, r := range rows {
		if r == nil {
			continue
		}
		result.Records = append(result.Records, *r)
		result.Counts.Add(r.Scheme)
	}
	if len(result.Records) == 0 {
		return nil, model.ErrNoDecryptableKeys
	}

	if opts.OutputPath != "" {
		if err := v.fs.WriteFile(opts.OutputPath, []byte(report.CSV(result.Records))); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		result.OutputPath = opts.OutputPath
	}
	if opts.QRDir != "" {
		result.QRFiles = v.writeQRCodes(opts.QRDir, result.Records)
	}

	v.log.WithFields(logrus.Fields{
		"eth":    result.Counts.ETH,
		"sol":    result.Counts.SOL,
		"failed": len(result.Failed),
	}).Infof("Decrypted %d keys", len(result.Records))

	return result, nil
}

// decryptRecords fills one slot per record: a row on success, a failure otherwise.
func (v *Vault) decryptRecords(ctx context.Context, key []byte, records []model.EncryptedRecord) ([]*model.DecryptedRecord, []error, error) {
	rows := make([]*model.DecryptedRecord, len(records))
	failures := make([]error, len(records))

	err := v.forEach(ctx, len(records), func(i int) error {
		r := records[i]
		privateKey, err := crypto.DecryptRecord(key, r.Ciphertext, r.IV)
		if err != nil {
			failures[i] = &model.RecordError{Index: r.Index, Scheme: r.Scheme, Err: err}
			return nil
		}

		address, err := keys.Address(r.Scheme, privateKey)
		if err != nil {
			failures[i] = &model.RecordError{Index: r.Index, Scheme: r.Scheme, Err: err}
			return nil
		}

		rows[i] = &model.DecryptedRecord{
			Index:      r.Index,
			Scheme:     r.Scheme,
			PrivateKey: privateKey,
			Address:    address,
		}
		v.log.WithField("index", r.Index).Debugf("Decrypted %s key %s -> %s", r.Scheme, common.MaskKey(privateKey), address)
		return nil
	})
	return rows, failures, err
}

// writeQRCodes writes an address QR code per row. Failures only warn: the
// table is the primary output and has already been written.
func (v *Vault) writeQRCodes(dir string, rows []model.DecryptedRecord) []string {
	var written []string
	for _, r := range rows {
		png, err := report.AddressQR(r.Address)
		if err != nil {
			v.log.WithField("index", r.Index).Warnf("Failed to generate QR code: %v", err)
			continue
		}
		path := report.QRFileName(dir, r)
		if err := v.fs.WriteFile(path, png); err != nil {
			v.log.WithField("index", r.Index).Warnf("Failed to write QR code: %v", err)
			continue
		}
		written = append(written, path)
	}
	return written
}
