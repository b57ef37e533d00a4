package ui

import (
	"fmt"
	"strings"
)

// Field is a label/value pair shown by Fields.
type Field struct {
	Label string
	Value string
}

// Fields renders aligned "label: value" lines, indented by two spaces.
// Labels are padded to the widest label.
func Fields(fields []Field) string {
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}

	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "  %-*s  %s\n", width+1, f.Label+":", f.Value)
	}
	return b.String()
}

// Bytes formats a byte count as "N bytes", or "1 byte".
func Bytes(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}
