package pipeline

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// fingerprint digests a table's column names and row values into a stable
// 64-bit hex string. Two runs over identical inputs produce identical
// fingerprints, which is how reruns are verified to be byte-identical.
func fingerprint(columns []string, rows [][]any) string {
	h := xxh3.New()
	for _, c := range columns {
		h.WriteString(c)
		h.WriteString("\x1f")
	}
	h.WriteString("\x1e")
	for _, row := range rows {
		for _, v := range row {
			if v == nil {
				h.WriteString("\x00")
			} else {
				fmt.Fprintf(h, "%v", v)
			}
			h.WriteString("\x1f")
		}
		h.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
