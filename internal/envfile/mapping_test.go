package envfile

import (
	"testing"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCanonical(t *testing.T) {
	m := Mapping{"DEBUG": "true", "API_KEY": "abc123"}

	got, err := Encode(m)
	require.NoError(t, err)
	assert.Equal(t, `{"API_KEY":"abc123","DEBUG":"true"}`, string(got))

	again, err := Encode(Mapping{"API_KEY": "abc123", "DEBUG": "true"})
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	got, err := Encode(Mapping{"Q": "a<b&c>d"})
	require.NoError(t, err)
	assert.Equal(t, `{"Q":"a<b&c>d"}`, string(got))
}

func TestEncodeEmpty(t *testing.T) {
	got, err := Encode(Mapping{})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	_, err := Encode(Mapping{"A": "\xff\xfe"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSource)

	_, err = Encode(Mapping{"\xc3\x28": "ok"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSource)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Mapping{
		{},
		{"API_KEY": "abc123", "DEBUG": "true"},
		{"": "empty key", "UNICODE": "héllo ✓", "QUOTES": `"'\`, "NL": "a\nb"},
	}

	for _, m := range cases {
		data, err := Encode(m)
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Null", []byte("null")},
		{"Array", []byte(`["a"]`)},
		{"NumberValue", []byte(`{"A":1}`)},
		{"Truncated", []byte(`{"A":"1"`)},
		{"TrailingGarbage", []byte(`{"A":"1"}x`)},
		{"InvalidUTF8", []byte("{\"A\":\"\xff\"}")},
		{"Binary", []byte{0x00, 0x01, 0x02}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.ErrorIs(t, err, kerrors.ErrMalformedPlaintext)
		})
	}
}

func TestDecodeEmptyObjectAndEmptyBytes(t *testing.T) {
	got, err := Decode([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, Mapping{}, got)

	got, err = Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, Mapping{}, got)
}

func TestKeysSorted(t *testing.T) {
	m := Mapping{"b": "2", "a": "1", "C": "3"}
	assert.Equal(t, []string{"C", "a", "b"}, m.Keys())
}
