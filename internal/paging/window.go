package paging

// windowRadius is how many pages either side of the current page are shown.
const windowRadius = 2

// windowSpan is the number of numbered pages shown when enough exist.
const windowSpan = 2*windowRadius + 1

// Item is one entry of a page window: either a page number or a gap.
type Item struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Window returns the page buttons to display for currentPage out of
// totalPages: a run of up to five pages centred on the current page, plus
// the first and last pages with ellipsis gaps where the run does not reach
// them.
//
//	Window(1, 10)  → 1 2 3 4 5 … 10
//	Window(6, 10)  → 1 … 4 5 6 7 8 … 10
//	Window(10, 10) → 1 … 6 7 8 9 10
func Window(currentPage, totalPages int) []Item {
	totalPages = max(totalPages, 1)
	currentPage = min(max(currentPage, 1), totalPages)

	start := max(1, currentPage-windowRadius)
	end := min(totalPages, currentPage+windowRadius)
	if end-start < windowSpan-1 {
		switch {
		case start == 1:
			end = min(totalPages, start+windowSpan-1)
		case end == totalPages:
			start = max(1, end-windowSpan+1)
		}
	}

	items := make([]Item, 0, windowSpan+4)
	if start > 1 {
		items = append(items, Item{Page: 1, Current: currentPage == 1})
		if start > 2 {
			items = append(items, Item{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		items = append(items, Item{Page: p, Current: p == currentPage})
	}
	if end < totalPages {
		if end < totalPages-1 {
			items = append(items, Item{Ellipsis: true})
		}
		items = append(items, Item{Page: totalPages, Current: currentPage == totalPages})
	}
	return items
}
