package dpml

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader supplies file contents for imports and template loads (spec §6's
// required Reader(path) → string contract).
type Reader interface {
	Read(path string) (string, error)
}

// Writer persists template output (spec §6's optional Writer(path, string)
// contract).
type Writer interface {
	Write(path, content string) error
}

// FileReader is the default filesystem-backed Reader, decoding UTF-8 (with
// or without a BOM) and UTF-16 (LE or BE, BOM-detected) source files into
// plain UTF-8 strings, adapted from the teacher's detectAndDecodeFile.
type FileReader struct{}

func (FileReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeSource(data)
}

// FileWriter is the default filesystem-backed Writer.
type FileWriter struct{}

func (FileWriter) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// decodeSource detects a source file's encoding from its BOM and returns its
// content as a UTF-8 string. Files without a recognized BOM are assumed to
// already be UTF-8; files that turn out not to be valid UTF-8 are promoted
// byte-by-byte into runes rather than rejected outright.
func decodeSource(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	return string(bytes.TrimPrefix(utf8Data, []byte("\xEF\xBB\xBF"))), nil
}
