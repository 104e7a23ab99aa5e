package names

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the longest accepted name, in code points.
const MaxNameLength = 50

// Validation failures raised before any request is sent.
var (
	ErrEmptyName   = errors.New("Name cannot be empty")
	ErrNameTooLong = errors.New("Name cannot exceed 50 characters")
	ErrMissingID   = errors.New("Name ID is required for deletion")
)

// ValidateName trims and NFC-normalises name and checks it against the
// length rules. It returns the cleaned name.
func ValidateName(name string) (string, error) {
	cleaned := norm.NFC.String(strings.TrimSpace(name))
	if cleaned == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(cleaned) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return cleaned, nil
}
