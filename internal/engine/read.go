package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultEncoding = "utf-8"

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "shift_jis" or "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	return enc, nil
}

// readText reads p, decodes it with enc and strips a leading BOM. Files
// larger than maxBytes are rejected when maxBytes > 0.
func readText(p string, enc encoding.Encoding, maxBytes int) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if maxBytes > 0 && info.Size() > int64(maxBytes) {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), maxBytes)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if enc == nil {
		enc = encoding.Nop
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return strings.TrimPrefix(string(decoded), "\ufeff"), nil
}

