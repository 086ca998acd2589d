package csv

import (
	"bytes"
	"fmt"
	"strings"
)

type Record interface {
	Key() string
	Fields() []string
}

type FilterFunc[T Record] func(T) bool

// Create renders records as CSV, keeping only those the filter accepts. A
// nil filter keeps everything. Fields containing the separator or quotes
// are quoted.
func Create[T Record](header []string, records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ",") + "\n")
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		fields := r.Fields()
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quote(f)
		}
		buf.WriteString(strings.Join(quoted, ",") + "\n")
	}
	return buf.Bytes()
}

func quote(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
