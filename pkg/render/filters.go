package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/arthur-debert/vuegen/pkg/errors"
)

var errNotNumber = errors.New(errors.ErrInvalidInput, "input is not a number")

func init() {
	registerFilters()
}

// registerFilters adds the filters generated C sources commonly need
func registerFilters() {
	if !pongo2.FilterExists("upperfirst") {
		_ = pongo2.RegisterFilter("upperfirst", filterUpperFirst)
	}
	if !pongo2.FilterExists("identifier") {
		_ = pongo2.RegisterFilter("identifier", filterIdentifier)
	}
	if !pongo2.FilterExists("hex") {
		_ = pongo2.RegisterFilter("hex", filterHex)
	}
}

func filterUpperFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	if s == "" {
		return pongo2.AsValue(""), nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return pongo2.AsValue(string(unicode.ToUpper(r)) + s[size:]), nil
}

// filterIdentifier turns a display name into a C identifier: anything that
// is not a letter, digit or underscore becomes an underscore, and a leading
// digit is prefixed with one.
func filterIdentifier(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	for i, r := range in.String() {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteRune('_')
		}
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return pongo2.AsValue(b.String()), nil
}

// filterHex formats an integer as 0x-prefixed upper case hex; the parameter
// is the minimum number of digits
func filterHex(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsNumber() {
		return nil, &pongo2.Error{Sender: "filter:hex", OrigError: errNotNumber}
	}
	width := 0
	if param != nil && param.IsInteger() {
		width = param.Integer()
	}
	n := int64(in.Integer())
	var digits string
	if n < 0 {
		digits = strconv.FormatUint(uint64(uint32(n)), 16)
	} else {
		digits = strconv.FormatInt(n, 16)
	}
	digits = strings.ToUpper(digits)
	for len(digits) < width {
		digits = "0" + digits
	}
	return pongo2.AsValue("0x" + digits), nil
}
