// Package textenc decodes raw file bytes into UTF-8 text.
//
// UTF-8 input (with or without a byte order mark) is validated and returned
// as is. Input starting with a UTF-16 byte order mark is transcoded. Anything
// else that is not valid UTF-8 is rejected.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidText indicates the bytes could not be decoded as text.
var ErrInvalidText = errors.New("content is not valid UTF-8 or BOM-marked UTF-16")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode returns raw as a UTF-8 string with any byte order mark removed.
func Decode(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE) {
		return decodeUTF16(raw)
	}

	raw = bytes.TrimPrefix(raw, bomUTF8)
	if !utf8.Valid(raw) {
		return "", ErrInvalidText
	}
	return string(raw), nil
}

// decodeUTF16 transcodes BOM-marked UTF-16. The BOM selects the byte order.
func decodeUTF16(raw []byte) (string, error) {
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidText
	}
	return string(out), nil
}
