package vault

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/keyvault/internal/common"
	"github.com/AlexZinkM/keyvault/internal/crypto"
	"github.com/AlexZinkM/keyvault/internal/keys"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/internal/store"
)

// RekeyOptions configures the rekey batch.
type RekeyOptions struct {
	StorePath string
}

// RekeyResult contains the outcome of a rekey batch.
type RekeyResult struct {
	StorePath string
	Counts    common.SchemeCounts
}

// Rekey re-encrypts every record of the store under a new password and a
// fresh salt. Indices and schemes are kept; legacy untagged records are
// written back with an explicit tag.
//
// Unlike Decrypt this is all or nothing: if any record fails to decrypt, or
// decrypts to something that is not a key of its scheme, the store is left
// unchanged and ErrRekeyIncomplete is returned.
func (v *Vault) Rekey(ctx context.Context, opts RekeyOptions) (*RekeyResult, error) {
	s, salt, err := v.loadStore(opts.StorePath)
	if err != nil {
		return nil, err
	}
	if len(s.Records) == 0 {
		return nil, fmt.Errorf("%w: %s has no encrypted keys", model.ErrNoDecryptableKeys, opts.StorePath)
	}

	current, err := v.readPassword(promptCurrentPassword, false)
	if err != nil {
		return nil, err
	}
	defer clear(current)

	oldKey, err := v.deriveKey(current, salt)
	if err != nil {
		return nil, err
	}
	defer clear(oldKey)

	plain := make([]model.ClassifiedKey, len(s.Records))
	failures := make([]error, len(s.Records))
	err = v.forEach(ctx, len(s.Records), func(i int) error {
		r := s.Records[i]
		privateKey, err := crypto.DecryptRecord(oldKey, r.Ciphertext, r.IV)
		if err != nil {
			failures[i] = &model.RecordError{Index: r.Index, Scheme: r.Scheme, Err: err}
			return nil
		}
		classified, ok := keys.Classify(privateKey)
		if !ok || classified.Scheme != r.Scheme {
			failures[i] = &model.RecordError{Index: r.Index, Scheme: r.Scheme, Err: fmt.Errorf("%w: plaintext is not a %s key", model.ErrDecryption, r.Scheme)}
			return nil
		}
		plain[i] = classified
		return nil
	})
	if err != nil {
		return nil, err
	}
	if failed := v.logFailures(failures); len(failed) > 0 {
		return nil, fmt.Errorf("%w: records %v", model.ErrRekeyIncomplete, failed)
	}

	next, err := v.readPassword(promptNewPassword, true)
	if err != nil {
		return nil, err
	}
	defer clear(next)

	newSalt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	newKey, err := v.deriveKey(next, newSalt)
	if err != nil {
		return nil, err
	}
	defer clear(newKey)

	out := &model.Store{Salt: hex.EncodeToString(newSalt), Records: make([]model.EncryptedRecord, len(s.Records))}
	result := &RekeyResult{StorePath: opts.StorePath}
	err = v.forEach(ctx, len(s.Records), func(i int) error {
		ciphertext, iv, err := crypto.EncryptRecord(newKey, plain[i].Normalized)
		if err != nil {
			return fmt.Errorf("failed to encrypt key %d: %w", s.Records[i].Index, err)
		}
		out.Records[i] = model.EncryptedRecord{
			Index:      s.Records[i].Index,
			Ciphertext: ciphertext,
			IV:         iv,
			Scheme:     plain[i].Scheme,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, r := range out.Records {
		result.Counts.Add(r.Scheme)
	}

	if err := v.fs.WriteFile(opts.StorePath, []byte(store.Serialize(out))); err != nil {
		return nil, fmt.Errorf("failed to write store: %w", err)
	}
	v.log.Infof("Re-encrypted %d keys in %s", len(out.Records), opts.StorePath)

	return result, nil
}
