package model

import (
	"errors"
	"fmt"
)

// Validation errors abort a run before any cryptographic work.
var (
	// ErrEmptyPassword indicates the operator entered no password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrWeakPassword indicates the password is shorter than the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrPasswordMismatch indicates the confirmation did not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrNotTerminal indicates a password prompt was attempted without an interactive terminal.
	ErrNotTerminal = errors.New("stdin is not a terminal: run the app interactively to enter password")

	// ErrInputNotFound indicates the input key list does not exist.
	ErrInputNotFound = errors.New("input key file not found")

	// ErrEmptyInput indicates the input key list has no non-blank lines.
	ErrEmptyInput = errors.New("input key file is empty")

	// ErrStoreNotFound indicates the store file does not exist.
	ErrStoreNotFound = errors.New("store file not found")

	// ErrMissingSalt indicates the store has no SALT= line.
	ErrMissingSalt = errors.New("store has no SALT entry")

	// ErrInvalidSalt indicates the stored salt is not 16 bytes of hex.
	ErrInvalidSalt = errors.New("invalid salt")
)

// Per-record errors skip a single record and never abort a run on their own.
var (
	// ErrUnrecognizedKey indicates a raw line is neither an ETH nor a SOL private key.
	ErrUnrecognizedKey = errors.New("unrecognized private key format")

	// ErrDecryption indicates a record could not be decrypted.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidKey indicates a decrypted key cannot produce an address.
	ErrInvalidKey = errors.New("invalid private key")
)

// Escalation errors are raised when every record of a run failed.
var (
	// ErrNoValidKeys indicates the encrypt run produced no records.
	ErrNoValidKeys = errors.New("no valid private keys found")

	// ErrNoDecryptableKeys indicates the decrypt run produced no rows.
	ErrNoDecryptableKeys = errors.New("no decryptable private keys")

	// ErrRekeyIncomplete indicates at least one record could not be decrypted during rekey.
	ErrRekeyIncomplete = errors.New("not every record could be decrypted, store left unchanged")
)

// RecordError is a per-record failure
type RecordError struct {
	Index  int
	Scheme Scheme
	Err    error
}

func (e *RecordError) Error() string {
	if e.Scheme == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("%s record %d: %v", e.Scheme, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsRecordError checks if error is a RecordError
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}
