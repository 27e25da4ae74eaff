// Package vault runs the encrypt, decrypt and rekey batches over a key store.
//
// A Vault owns no I/O of its own: files go through a FileSystem and the
// password comes from a PasswordProvider, both injected by the caller. The
// password is requested once per run, before any record is processed. The
// derived session key and the password are wiped when the run ends.
//
// Records are independent of each other, so per-record work may run on a
// bounded worker pool. Results land in index-addressed slots and warnings are
// logged after the loop in index order, which keeps the output identical to a
// sequential run.
package vault

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"

	"github.com/AlexZinkM/keyvault/internal/crypto"
	"github.com/AlexZinkM/keyvault/internal/model"
	"github.com/AlexZinkM/keyvault/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FileSystem reads and atomically replaces whole files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// PasswordProvider obtains a password from the operator.
// Returned slices are wiped by the vault after use.
type PasswordProvider interface {
	ReadPassword(prompt string) ([]byte, error)
}

// Options configures a Vault.
type Options struct {
	// Workers bounds per-record parallelism. Values below 1 mean sequential.
	Workers int

	// Log receives per-record progress and warnings. Defaults to the package logger.
	Log *logrus.Entry

	// OnDerive is called right before the key derivation starts and the
	// returned function right after it ends. Used by the CLI for a spinner.
	OnDerive func() (done func())
}

// Vault runs batches against a store.
type Vault struct {
	fs        FileSystem
	passwords PasswordProvider
	workers   int
	log       *logrus.Entry
	onDerive  func() func()
}

const (
	promptPassword        = "Enter password (at least 8 characters): "
	promptConfirm         = "Confirm password: "
	promptCurrentPassword = "Enter current password: "
	promptNewPassword     = "Enter new password (at least 8 characters): "
)

var log = logrus.WithField("prefix", "vault")

// New creates a Vault.
func New(fsys FileSystem, passwords PasswordProvider, opts Options) *Vault {
	v := &Vault{
		fs:        fsys,
		passwords: passwords,
		workers:   opts.Workers,
		log:       opts.Log,
		onDerive:  opts.OnDerive,
	}
	if v.workers < 1 {
		v.workers = 1
	}
	if v.log == nil {
		v.log = log
	}
	return v
}

// readPassword prompts once, or twice when confirm is set, and validates the result.
func (v *Vault) readPassword(prompt string, confirm bool) ([]byte, error) {
	password, err := v.passwords.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if err := crypto.ValidatePassword(password); err != nil {
		clear(password)
		return nil, err
	}
	if !confirm {
		return password, nil
	}

	again, err := v.passwords.ReadPassword(promptConfirm)
	if err != nil {
		clear(password)
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	defer clear(again)
	if string(again) != string(password) {
		clear(password)
		return nil, model.ErrPasswordMismatch
	}
	return password, nil
}

// deriveKey runs the KDF, wrapped in the OnDerive hook.
func (v *Vault) deriveKey(password, salt []byte) ([]byte, error) {
	if v.onDerive != nil {
		done := v.onDerive()
		defer done()
	}
	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// loadStore reads and parses the store. Any failure here is fatal.
func (v *Vault) loadStore(path string) (*model.Store, []byte, error) {
	data, err := v.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", model.ErrStoreNotFound, path)
		}
		return nil, nil, fmt.Errorf("failed to read store: %w", err)
	}

	s, warnings, err := store.Parse(string(data))
	for _, w := range warnings {
		v.log.WithField("line", w.Line).Warnf("Skipping store entry: %s", w.Reason)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}

	salt, err := hex.DecodeString(s.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", model.ErrInvalidSalt, err)
	}
	return s, salt, nil
}

// forEach calls fn for every index in [0, n) on at most v.workers goroutines.
// An error returned by fn is fatal and stops the batch; per-record failures
// must be recorded by fn itself.
func (v *Vault) forEach(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// logFailures reports per-record failures in index order.
func (v *Vault) logFailures(failures []error) []int {
	var indices []int
	for _, err := range failures {
		if err == nil {
			continue
		}
		var re *model.RecordError
		if errors.As(err, &re) {
			indices = append(indices, re.Index)
			v.log.WithFields(logrus.Fields{"index": re.Index, "chain": re.Scheme}).Warn(re.Err)
			continue
		}
		v.log.Warn(err)
	}
	return indices
}
