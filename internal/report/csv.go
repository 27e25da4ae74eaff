// Package report renders decrypted records for the operator.
package report

import (
	"strconv"
	"strings"

	"github.com/AlexZinkM/keyvault/internal/model"
)

// CSVHeader is the first line of the decrypted table.
const CSVHeader = "Index,Chain,PrivateKey,Address"

// CSV renders records as the decrypted table. Rows are joined with "\n"
// and there is no trailing newline.
func CSV(records []model.DecryptedRecord) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for i, r := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(EscapeCSV(strconv.Itoa(r.Index)))
		b.WriteByte(',')
		b.WriteString(EscapeCSV(string(r.Scheme)))
		b.WriteByte(',')
		b.WriteString(EscapeCSV(r.PrivateKey))
		b.WriteByte(',')
		b.WriteString(EscapeCSV(r.Address))
	}
	return b.String()
}

// EscapeCSV quotes a field only when it contains a comma, a double quote or
// a line break; inner quotes are doubled.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
