package targets

import (
	"github.com/arthur-debert/vuegen/pkg/errors"
)

// MissingPolicy decides what happens when a placeholder has no value
type MissingPolicy string

const (
	// MissingFail reports a PLACEHOLDER_MISSING error and the target is skipped
	MissingFail MissingPolicy = "fail"

	// MissingEmpty substitutes an empty string
	MissingEmpty MissingPolicy = "empty"

	// MissingUndefined substitutes the literal "undefined"
	MissingUndefined MissingPolicy = "undefined"
)

// ParseMissingPolicy parses a policy name
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch p := MissingPolicy(name); p {
	case MissingFail, MissingEmpty, MissingUndefined:
		return p, nil
	case "":
		return MissingFail, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown missing placeholder policy %q", name)
	}
}
