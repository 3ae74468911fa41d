package export

import (
	"sort"
	"strings"
)

// BOM is the UTF-8 byte-order-mark prefixed to every export so spreadsheet
// tools pick up the encoding.
const BOM = "\xEF\xBB\xBF"

// Row is one flattened record. Keys absent from a row render as empty
// fields; the header is the union of keys across all rows.
type Row map[string]string

// HeaderKeys computes the export header: the union of keys across rows,
// with keys from the preferred list first in list order and the remainder
// appended alphabetically.
func HeaderKeys(rows []Row, preferred []string) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0, len(preferred))
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	rank := make(map[string]int, len(preferred))
	for i, key := range preferred {
		rank[key] = i
	}

	sort.Slice(keys, func(i, j int) bool {
		ri, iOK := rank[keys[i]]
		rj, jOK := rank[keys[j]]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	return keys
}

// Document serializes rows into the final CSV payload: one header line, one
// line per row, \n separators and a BOM prefix. Fields containing a comma
// are wrapped in double quotes with internal quotes doubled; everything
// else is emitted verbatim.
func Document(rows []Row, preferred []string) string {
	keys := HeaderKeys(rows, preferred)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(keys, ","))

	for _, row := range rows {
		fields := make([]string, 0, len(keys))
		for _, key := range keys {
			fields = append(fields, encodeField(row[key]))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return BOM + strings.Join(lines, "\n")
}

func encodeField(value string) string {
	if !strings.Contains(value, ",") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
