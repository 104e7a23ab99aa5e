// Package paging computes page windows over an in-memory list.
//
// Everything here is a pure function of its arguments. Info is always
// derived, never stored, so it cannot drift from the totals it describes.
package paging

import (
	"slices"

	"golang.org/x/text/message"
)

// DefaultPageSize is the page size a fresh store starts with.
const DefaultPageSize = 10

// PageSizes lists the page sizes a user may pick, smallest first.
var PageSizes = []int{10, 25, 50, 100}

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// NextPageSize returns the size after current in PageSizes, wrapping around.
// Unknown sizes map to the first entry.
func NextPageSize(current int) int {
	i := slices.Index(PageSizes, current)
	return PageSizes[(i+1)%len(PageSizes)]
}

// PrevPageSize returns the size before current in PageSizes, wrapping around.
func PrevPageSize(current int) int {
	i := slices.Index(PageSizes, current)
	if i <= 0 {
		return PageSizes[len(PageSizes)-1]
	}
	return PageSizes[i-1]
}

// Info describes the visible window of a list.
type Info struct {
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	StartIndex  int  `json:"start_index"  yaml:"start_index"`
	EndIndex    int  `json:"end_index"    yaml:"end_index"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	HasPrev     bool `json:"has_prev"     yaml:"has_prev"`
}

// Paginate clamps requestedPage into the valid range for totalItems and
// pageSize and returns the resulting window. A non-positive pageSize falls
// back to DefaultPageSize and a negative totalItems counts as zero.
func Paginate(totalItems, pageSize, requestedPage int) Info {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := max(1, (totalItems+pageSize-1)/pageSize)
	current := min(max(requestedPage, 1), totalPages)
	start := (current - 1) * pageSize
	end := min(start+pageSize, totalItems)

	return Info{
		TotalPages:  totalPages,
		CurrentPage: current,
		PageSize:    pageSize,
		StartIndex:  start,
		EndIndex:    end,
		TotalItems:  totalItems,
		HasNext:     current < totalPages,
		HasPrev:     current > 1,
	}
}

// Slice returns a copy of data[info.StartIndex:info.EndIndex]. Windows that
// do not fit data yield an empty slice.
func Slice[T any](data []T, info Info) []T {
	start, end := info.StartIndex, info.EndIndex
	if start < 0 || end < start || end > len(data) {
		return []T{}
	}
	out := make([]T, end-start)
	copy(out, data[start:end])
	return out
}

// Summary renders the "Showing 1-10 of 25 items" line, using p for number
// formatting.
func (i Info) Summary(p *message.Printer) string {
	if i.TotalItems == 0 {
		return "No items to display"
	}
	return p.Sprintf("Showing %d-%d of %d items", i.StartIndex+1, i.EndIndex, i.TotalItems)
}

// Position renders "Page 2 of 5".
func (i Info) Position(p *message.Printer) string {
	return p.Sprintf("Page %d of %d", i.CurrentPage, i.TotalPages)
}
