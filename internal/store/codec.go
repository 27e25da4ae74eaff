// Package store reads and writes the vault file.
//
// The format is line oriented KEY=VALUE text with no escaping:
//
//	SALT=<32 hex chars>
//	ENCRYPTED_KEY_<index>=<ciphertext hex>:<iv hex>:<SCHEME>
//
// The scheme segment is optional; stores written before it existed are ETH.
package store

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/AlexZinkM/keyvault/internal/model"
)

const (
	saltKey      = "SALT"
	recordPrefix = "ENCRYPTED_KEY_"
	saltLen      = 16
)

var recordLine = regexp.MustCompile(`^ENCRYPTED_KEY_(\d+)=(.*)$`)

// Serialize renders a store. Records are written in ascending index order.
func Serialize(s *model.Store) string {
	records := make([]model.EncryptedRecord, len(s.Records))
	copy(records, s.Records)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Index < records[j].Index })

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, saltKey+"="+s.Salt)
	for _, r := range records {
		scheme := r.Scheme
		if scheme == "" {
			scheme = model.SchemeETH
		}
		lines = append(lines, fmt.Sprintf("%s%d=%s:%s:%s", recordPrefix, r.Index, r.Ciphertext, r.IV, scheme))
	}
	return strings.Join(lines, "\n")
}

// Parse reads a store. A missing or malformed salt is fatal; malformed record
// lines are skipped and reported as warnings. Records come back sorted by
// numeric index.
func Parse(text string) (*model.Store, []model.ParseWarning, error) {
	var (
		salt     string
		haveSalt bool
		warnings []model.ParseWarning
		byIndex  = map[int]model.EncryptedRecord{}
	)

	for n, raw := range strings.Split(text, "\n") {
		lineNo := n + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if value, ok := strings.CutPrefix(line, saltKey+"="); ok {
			if haveSalt {
				warnings = append(warnings, model.ParseWarning{Line: lineNo, Reason: "duplicate SALT entry, last one wins"})
			}
			salt, haveSalt = strings.TrimSpace(value), true
			continue
		}

		if !strings.HasPrefix(line, recordPrefix) {
			continue
		}

		m := recordLine.FindStringSubmatch(line)
		if m == nil {
			warnings = append(warnings, model.ParseWarning{Line: lineNo, Reason: "malformed record key"})
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			warnings = append(warnings, model.ParseWarning{Line: lineNo, Reason: fmt.Sprintf("invalid record index: %v", err)})
			continue
		}

		record, reason := parseValue(index, m[2])
		if reason != "" {
			warnings = append(warnings, model.ParseWarning{Line: lineNo, Reason: fmt.Sprintf("record %d %s", index, reason)})
			continue
		}
		if _, dup := byIndex[index]; dup {
			warnings = append(warnings, model.ParseWarning{Line: lineNo, Reason: fmt.Sprintf("duplicate record %d, last one wins", index)})
		}
		byIndex[index] = record
	}

	if !haveSalt || salt == "" {
		return nil, warnings, model.ErrMissingSalt
	}
	if b, err := hex.DecodeString(salt); err != nil || len(b) != saltLen {
		return nil, warnings, fmt.Errorf("%w: expected %d bytes of hex", model.ErrInvalidSalt, saltLen)
	}

	s := &model.Store{Salt: salt, Records: make([]model.EncryptedRecord, 0, len(byIndex))}
	for _, r := range byIndex {
		s.Records = append(s.Records, r)
	}
	sort.Slice(s.Records, func(i, j int) bool { return s.Records[i].Index < s.Records[j].Index })

	return s, warnings, nil
}

// parseValue splits <ciphertext>:<iv>[:<scheme>]. A non-empty reason means the record is skipped.
func parseValue(index int, value string) (model.EncryptedRecord, string) {
	parts := strings.Split(value, ":")
	ciphertext := parts[0]
	var iv, tag string
	if len(parts) > 1 {
		iv = parts[1]
	}
	if len(parts) > 2 {
		tag = parts[2]
	}

	if ciphertext == "" || iv == "" {
		return model.EncryptedRecord{}, "must contain ciphertext and iv"
	}

	scheme, err := model.ParseScheme(tag)
	if err != nil {
		return model.EncryptedRecord{}, err.Error()
	}

	return model.EncryptedRecord{
		Index:      index,
		Ciphertext: ciphertext,
		IV:         iv,
		Scheme:     scheme,
	}, ""
}
