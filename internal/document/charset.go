package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	encodingRef = regexp.MustCompile(`(?s)^(<\?xml[^>]*?\bencoding\s*=\s*["'])([^"']+)(["'])`)
)

// NormalizeCharset returns data as UTF-8 with any byte-order mark removed.
// A document whose XML declaration names another charset (IBM437 and
// windows-1252 are common in the wild) is transcoded and its declaration
// rewritten to UTF-8. UTF-16 input is detected from its byte-order mark.
// Line structure is preserved, so positions reported against the result
// match the original file.
func NormalizeCharset(data []byte) ([]byte, error) {
	if dec := utf16Decoder(data); dec != nil {
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode utf-16: %w", err)
		}
		data = out
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	m := encodingRef.FindSubmatchIndex(data)
	if m == nil {
		return data, nil
	}
	label := string(data[m[4]:m[5]])
	if isUTF8Label(label) {
		return data, nil
	}

	rewritten := make([]byte, 0, len(data))
	rewritten = append(rewritten, data[:m[4]]...)
	rewritten = append(rewritten, "UTF-8"...)
	rewritten = append(rewritten, data[m[5]:]...)

	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		// Already transcoded from the byte-order mark above.
		return rewritten, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	out, err := enc.NewDecoder().Bytes(rewritten)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return out, nil
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	}
	return false
}

func utf16Decoder(data []byte) *encoding.Decoder {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	}
	return nil
}
