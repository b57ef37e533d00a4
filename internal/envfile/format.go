package envfile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Format names an output rendering of a Mapping.
type Format string

const (
	FormatDotenv Format = "dotenv"
	FormatJSON   Format = "json"
	FormatExport Format = "export"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatDotenv, FormatJSON, FormatExport}

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidName reports whether key can be exported as an environment variable.
func IsValidName(key string) bool {
	return envNamePattern.MatchString(key)
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (expected dotenv, json or export)", s)
}

// Render writes m in the requested format with keys sorted.
// dotenv output parses back to the same Mapping as long as no key contains '='
// and no key or value has surrounding whitespace or a newline.
func Render(m Mapping, f Format) (string, error) {
	var b strings.Builder

	switch f {
	case FormatDotenv:
		for _, k := range m.Keys() {
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(m[k])
			b.WriteString("\n")
		}
	case FormatExport:
		for _, k := range m.Keys() {
			if !IsValidName(k) {
				continue
			}
			b.WriteString("export ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(shellQuote(m[k]))
			b.WriteString("\n")
		}
	case FormatJSON:
		data, err := json.MarshalIndent(map[string]string(m), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json: %w", err)
		}
		b.Write(data)
		b.WriteString("\n")
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}

	return b.String(), nil
}

// Environ returns KEY=VALUE pairs for keys that are valid variable names,
// sorted, plus the names that were skipped.
func (m Mapping) Environ() (env []string, skipped []string) {
	for _, k := range m.Keys() {
		if !IsValidName(k) {
			skipped = append(skipped, k)
			continue
		}
		env = append(env, k+"="+m[k])
	}
	return env, skipped
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
