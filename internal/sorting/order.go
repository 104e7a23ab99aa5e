package sorting

import (
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/namelist/internal/names"
)

// Order returns a sorted copy of records. The input is never modified and
// the sort is stable in every mode.
//
// Name modes use a case-insensitive, accent-respecting, numeric collation so
// "item2" sorts before "item10". Records with an empty name have no place in
// the collation, so they keep their input positions and the named records
// are sorted into the remaining slots.
//
// Date modes compare ParsedCreatedAt, so unparseable timestamps sort as the
// Unix epoch.
//
// An unknown mode returns the records in their original order.
func Order(records []names.Record, mode Mode) []names.Record {
	out := make([]names.Record, len(records))
	copy(out, records)
	if len(out) < 2 {
		return out
	}

	switch mode {
	case NameAsc, NameDesc:
		sortNamed(out, mode == NameDesc)
	case DateNewest, DateOldest:
		keys := make([]int64, len(out))
		idx := make([]int, len(out))
		for i, r := range out {
			keys[i] = r.ParsedCreatedAt().UnixNano()
			idx[i] = i
		}
		newest := mode == DateNewest
		sort.SliceStable(idx, func(i, j int) bool {
			a, b := keys[idx[i]], keys[idx[j]]
			if newest {
				return a > b
			}
			return a < b
		})
		sorted := make([]names.Record, len(out))
		for i, k := range idx {
			sorted[i] = out[k]
		}
		out = sorted
	default:
		log.Warn().Int("mode", int(mode)).Msg("unknown sort mode, keeping original order")
	}
	return out
}

// sortNamed sorts the records with a non-empty name in place, leaving
// empty-named records where they are.
func sortNamed(out []names.Record, desc bool) {
	slots := make([]int, 0, len(out))
	named := make([]names.Record, 0, len(out))
	for i, r := range out {
		if r.Name != "" {
			slots = append(slots, i)
			named = append(named, r)
		}
	}
	if len(named) < 2 {
		return
	}

	col := newCollator()
	sort.SliceStable(named, func(i, j int) bool {
		if desc {
			return col.CompareString(named[j].Name, named[i].Name) < 0
		}
		return col.CompareString(named[i].Name, named[j].Name) < 0
	})
	for k, i := range slots {
		out[i] = named[k]
	}
}

// Compare reports the collation order of two names under NameAsc: negative,
// zero or positive. Empty names compare equal to anything.
func Compare(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return newCollator().CompareString(a, b)
}

// newCollator returns a fresh collator. Collators hold scratch buffers and
// are not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
}
