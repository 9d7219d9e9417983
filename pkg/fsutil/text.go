package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize bounds how much of a file is inspected for binary content.
const sniffSize = 8000

// ReadText reads path as text and returns it as UTF-8 along with the file's
// permission bits.
func ReadText(ctx context.Context, path string) (string, os.FileMode, error) {
	content, mode, err := ReadFile(ctx, path)
	if err != nil {
		return "", 0, err
	}

	text, err := DecodeText(content)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", path, err)
	}
	return text, mode, nil
}

// DecodeText converts content to a UTF-8 string. A leading byte order mark
// selects UTF-8 or UTF-16 (either endianness) and is dropped; without one the
// content is taken as UTF-8. Content with NUL bytes and no UTF-16 byte order
// mark fails with ErrBinary.
func DecodeText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}

	if !hasUTF16BOM(content) {
		sample := content
		if len(sample) > sniffSize {
			sample = sample[:sniffSize]
		}
		if bytes.IndexByte(sample, 0) >= 0 {
			return "", ErrBinary
		}
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

func hasUTF16BOM(content []byte) bool {
	return bytes.HasPrefix(content, []byte{0xFF, 0xFE}) || bytes.HasPrefix(content, []byte{0xFE, 0xFF})
}
