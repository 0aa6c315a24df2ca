package render

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/arthur-debert/vuegen/pkg/errors"
)

// DefaultEncoding is used when neither the target nor the configuration
// names an encoding
const DefaultEncoding = "utf-8"

// Encode converts UTF-8 content to the named encoding. Labels follow the
// WHATWG encoding names and aliases (shift_jis, windows-1252, iso-8859-1...).
func Encode(content []byte, label string) ([]byte, error) {
	if isUTF8(label) {
		return content, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncodingUnknown, "unknown encoding %q", label).
			WithDetail("encoding", label)
	}

	out, err := enc.NewEncoder().Bytes(content)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncodingConvert, "cannot encode output as %s", label).
			WithDetail("encoding", label)
	}
	return out, nil
}

// ValidEncoding reports whether label names a supported encoding
func ValidEncoding(label string) bool {
	if isUTF8(label) {
		return true
	}
	_, err := htmlindex.Get(label)
	return err == nil
}

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
