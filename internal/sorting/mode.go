// Package sorting orders name records for display.
package sorting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Mode selects an ordering strategy.
type Mode int

const (
	NameAsc Mode = iota
	NameDesc
	DateNewest
	DateOldest
)

// Default is the mode a fresh store starts with.
const Default = NameAsc

// ErrUnknownMode is returned by ParseMode for unrecognised input.
var ErrUnknownMode = errors.New("unknown sort mode")

// maxSuggestDistance bounds how far a typo may be from a mode name before
// ParseMode stops suggesting it.
const maxSuggestDistance = 3

var modeNames = map[Mode]string{
	NameAsc:    "name-asc",
	NameDesc:   "name-desc",
	DateNewest: "date-newest",
	DateOldest: "date-oldest",
}

var modeDescriptions = map[Mode]string{
	NameAsc:    "Names sorted alphabetically A to Z",
	NameDesc:   "Names sorted alphabetically Z to A",
	DateNewest: "Names sorted by newest entries first",
	DateOldest: "Names sorted by oldest entries first",
}

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{NameAsc, NameDesc, DateNewest, DateOldest}
}

// Valid reports whether m is one of the four known modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Label is the short text used on sort controls.
func (m Mode) Label() string {
	switch m {
	case NameAsc:
		return "A→Z"
	case NameDesc:
		return "Z→A"
	case DateNewest:
		return "Newest"
	case DateOldest:
		return "Oldest"
	default:
		return "?"
	}
}

// Description returns a sentence describing the ordering.
func (m Mode) Description() string {
	if d, ok := modeDescriptions[m]; ok {
		return d
	}
	return "Sort order changed"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode maps the text form of a mode back to a Mode. Underscores and case
// are ignored. Near misses produce an error that suggests the closest mode.
func ParseMode(text string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for _, m := range Modes() {
		if modeNames[m] == normalized {
			return m, nil
		}
	}
	if suggestion, ok := suggest(normalized); ok {
		return Default, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownMode, text, suggestion)
	}
	return Default, fmt.Errorf("%w %q (valid: %s)", ErrUnknownMode, text, strings.Join(modeList(), ", "))
}

func suggest(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, m := range Modes() {
		if d := levenshtein.ComputeDistance(input, modeNames[m]); d < bestDist {
			best, bestDist = modeNames[m], d
		}
	}
	return best, best != ""
}

func modeList() []string {
	out := make([]string, 0, len(modeNames))
	for _, m := range Modes() {
		out = append(out, modeNames[m])
	}
	return out
}
