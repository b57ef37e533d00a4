package envfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// Mapping is the set of variables held by one env file.
type Mapping map[string]string

// Keys returns the keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode returns the canonical byte form: a compact JSON object with sorted
// keys and no HTML escaping. The empty mapping encodes to zero bytes.
// Equal mappings always encode to identical bytes. A key or value holding
// invalid UTF-8 fails with ErrInvalidSource.
func Encode(m Mapping) ([]byte, error) {
	if len(m) == 0 {
		return []byte{}, nil
	}
	for k, v := range m {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			return nil, fmt.Errorf("%w: key %q holds invalid UTF-8", kerrors.ErrInvalidSource, k)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(m)); err != nil {
		return nil, fmt.Errorf("failed to encode mapping: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the canonical byte form. Zero bytes decode to an empty
// mapping. Anything that is not a UTF-8 JSON object of string values fails with
// ErrMalformedPlaintext.
func Decode(data []byte) (Mapping, error) {
	if len(data) == 0 {
		return Mapping{}, nil
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", kerrors.ErrMalformedPlaintext)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedPlaintext, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", kerrors.ErrMalformedPlaintext)
	}
	return Mapping(raw), nil
}
