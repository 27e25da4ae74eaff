package vault

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/AlexZinkM/keyvault/internal/common"
	"github.com/AlexZinkM/keyvault/internal/crypto"
	"github.com/AlexZinkM/keyvault/internal/keys"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/internal/store"

	"github.com/sirupsen/logrus"
)

// EncryptOptions configures the encrypt batch.
type EncryptOptions struct {
	// InputPath is the plain text key list, one key per line.
	InputPath string

	// StorePath is the store file. It is fully replaced on success.
	StorePath string
}

// EncryptResult contains the outcome of an encrypt batch.
type EncryptResult struct {
	StorePath string
	Counts    common.SchemeCounts

	// Skipped lists the indices of lines that failed classification.
	Skipped []int
}

// ReadEntries splits an input key list into entries. Blank lines are dropped
// before numbering, so indices count non-blank lines only.
func ReadEntries(text string) []model.RawEntry {
	var entries []model.RawEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, model.RawEntry{Index: len(entries), Line: line})
	}
	return entries
}

// Encrypt classifies and encrypts every key of the input list and writes a new store.
//
// Lines that are not a recognized key are skipped with a warning; their index
// is still consumed, leaving a gap in the store. Returns ErrInputNotFound or
// ErrEmptyInput before prompting for a password, and ErrNoValidKeys, without
// touching the store, when no line could be encrypted.
func (v *Vault) Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	data, err := v.fs.ReadFile(opts.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrInputNotFound, opts.InputPath)
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	entries := ReadEntries(string(data))
	clear(data)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrEmptyInput, opts.InputPath)
	}

	password, err := v.readPassword(promptPassword, true)
	if err != nil {
		return nil, err
	}
	defer clear(password)

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	key, err := v.deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	records, failures, err := v.encryptEntries(ctx, key, entries)
	if err != nil {
		return nil, err
	}

	result := &EncryptResult{
		StorePath: opts.StorePath,
		Skipped:   v.logFailures(failures),
	}
	s := &model.Store{Salt: hex.EncodeToString(salt)}
	for _, r := range records {
		if r == nil {
			continue
		}
		s.Records = append(s.Records, *r)
		result.Counts.Add(r.Scheme)
	}

	if len(s.Records) == 0 {
		return nil, model.ErrNoValidKeys
	}

	if err := v.fs.WriteFile(opts.StorePath, []byte(store.Serialize(s))); err != nil {
		return nil, fmt.Errorf("failed to write store: %w", err)
	}
	v.log.WithFields(logrus.Fields{
		"eth":     result.Counts.ETH,
		"sol":     result.Counts.SOL,
		"skipped": len(result.Skipped),
	}).Infof("Saved salt and %d encrypted keys to %s", len(s.Records), opts.StorePath)

	return result, nil
}

// encryptEntries fills one slot per entry: a record on success, a failure otherwise.
func (v *Vault) encryptEntries(ctx context.Context, key []byte, entries []model.RawEntry) ([]*model.EncryptedRecord, []error, error) {
	records := make([]*model.EncryptedRecord, len(entries))
	failures := make([]error, len(entries))

	err := v.forEach(ctx, len(entries), func(i int) error {
		e := entries[i]
		classified, ok := keys.Classify(e.Line)
		if !ok {
			failures[i] = &model.RecordError{
				Index: e.Index,
				Err:   fmt.Errorf("%w: %s (supported: ETH 64 hex characters, SOL Base58)", model.ErrUnrecognizedKey, common.MaskKey(e.Line)),
			}
			return nil
		}

		ciphertext, iv, err := crypto.EncryptRecord(key, classified.Normalized)
		if err != nil {
			return fmt.Errorf("failed to encrypt key %d: %w", e.Index, err)
		}
		records[i] = &model.EncryptedRecord{
			Index:      e.Index,
			Ciphertext: ciphertext,
			IV:         iv,
			Scheme:     classified.Scheme,
		}
		v.log.WithField("index", e.Index).Debugf("Encrypted %s key %s", classified.Scheme, common.MaskKey(classified.Normalized))
		return nil
	})
	return records, failures, err
}
