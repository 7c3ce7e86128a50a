package encoding

import (
	"fmt"
	"strings"

	"github.com/arloliu/textcodec/errs"
)

// Label is the canonical name of the only supported encoding.
const Label = "utf-8"

// NormalizeLabel resolves an encoding label to its canonical name.
//
// Matching is case-insensitive and ignores surrounding whitespace. Only
// "utf-8" and "utf8" are accepted; every other label returns
// errs.ErrInvalidEncodingLabel.
func NormalizeLabel(label string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch normalized {
	case "utf-8", "utf8":
		return Label, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidEncodingLabel, label)
	}
}
