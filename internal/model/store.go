package model

// EncryptedRecord is one encrypted key as persisted in the store.
type EncryptedRecord struct {
	Index      int
	Ciphertext string // hex
	IV         string // hex, 16 bytes
	Scheme     Scheme
}

// Store is the persisted vault: one salt and records ordered by index.
type Store struct {
	Salt    string // hex, 16 bytes
	Records []EncryptedRecord
}

// ParseWarning describes a store line that was skipped while parsing.
type ParseWarning struct {
	Line   int // 1-based line number in the store text
	Reason string
}
