package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/state"
)

// dateLayout is how creation timestamps appear in the list.
const dateLayout = "2006-01-02 15:04"

// renderList renders the visible page. Rows are numbered by their position
// in the whole sorted list, not within the page.
func renderList(view state.View, selected int, styles Styles) string {
	if len(view.Records) == 0 {
		if view.Loading {
			return styles.MutedText.Render("Loading names...")
		}
		return styles.MutedText.Render("No names yet. Press a to add one.")
	}

	width := len(fmt.Sprint(view.Info.EndIndex))
	lines := make([]string, 0, len(view.Records))
	for i, rec := range view.Records {
		lines = append(lines, renderRow(view.Info.StartIndex+i+1, width, rec, i == selected, styles))
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func renderRow(number, width int, rec names.Record, selected bool, styles Styles) string {
	num := fmt.Sprintf("%*d.", width, number)
	created := ""
	if rec.CreatedAt != "" {
		created = rec.ParsedCreatedAt().Local().Format(dateLayout)
	}
	if selected {
		return styles.Selected.Render(fmt.Sprintf("%s %-30s %s", num, rec.Name, created))
	}
	return styles.FaintText.Render(num) + " " +
		styles.Text.Render(fmt.Sprintf("%-30s", rec.Name)) + " " +
		styles.MutedText.Render(created)
}

// renderPager renders the page buttons followed by the item range summary.
func renderPager(info paging.Info, p *message.Printer, styles Styles) string {
	var b strings.Builder

	prev := styles.FaintText.Render("‹")
	if info.HasPrev {
		prev = styles.AccentText.Render("‹")
	}
	b.WriteString(prev)

	for _, item := range paging.Window(info.CurrentPage, info.TotalPages) {
		b.WriteString(" ")
		switch {
		case item.Ellipsis:
			b.WriteString(styles.FaintText.Render("…"))
		case item.Current:
			b.WriteString(styles.PageCurrent.Render(fmt.Sprintf(" %d ", item.Page)))
		default:
			b.WriteString(styles.Text.Render(fmt.Sprint(item.Page)))
		}
	}

	next := styles.FaintText.Render("›")
	if info.HasNext {
		next = styles.AccentText.Render("›")
	}
	b.WriteString(" ")
	b.WriteString(next)
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(info.Summary(p)))

	return b.String()
}
