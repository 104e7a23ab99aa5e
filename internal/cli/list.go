package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/sorting"
	"github.com/five82/namelist/internal/state"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type listFlags struct {
	sort     string
	page     int
	pageSize int
	output   string
}

// listItem is one row of structured list output.
type listItem struct {
	Number    int    `json:"number"     yaml:"number"`
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// listOutput is the JSON and YAML document printed by list.
type listOutput struct {
	Items    []listItem  `json:"items"     yaml:"items"`
	PageInfo paging.Info `json:"page_info" yaml:"page_info"`
	Sort     string      `json:"sort"      yaml:"sort"`
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of names",
		Long:  "Load the collection and print a single page using the same sorting and pagination as the TUI",
		Example: `  # First page in the saved sort order
  namelist list

  # Third page of 25, oldest first
  namelist list --sort date-oldest --page-size 25 --page 3

  # Machine-readable output
  namelist list --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort mode: "+strings.Join(modeNames(), ", ")+" (default from prefs)")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number to print")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "names per page: "+joinInts(paging.PageSizes)+" (default from prefs)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputText, "output format (text, json, yaml)")

	return cmd
}

// validate checks flag values before any request is made.
func (f listFlags) validate() (sorting.Mode, error) {
	switch f.output {
	case outputText, outputJSON, outputYAML:
	default:
		return 0, fmt.Errorf("invalid output format %q: use text, json or yaml", f.output)
	}
	if f.page < 1 {
		return 0, fmt.Errorf("page must be >= 1, got %d", f.page)
	}
	if f.pageSize != 0 && !paging.ValidPageSize(f.pageSize) {
		return 0, fmt.Errorf("page-size must be one of %s, got %d", joinInts(paging.PageSizes), f.pageSize)
	}
	if strings.TrimSpace(f.sort) == "" {
		return 0, nil
	}
	return sorting.ParseMode(f.sort)
}

func runList(cmd *cobra.Command, root *rootFlags, flags listFlags) error {
	mode, err := flags.validate()
	if err != nil {
		return err
	}

	env, logger, err := setupHeadless(cmd, root)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	ctrl := env.Controller
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}
	if strings.TrimSpace(flags.sort) != "" {
		ctrl.Sort(mode)
	}
	if flags.pageSize != 0 {
		ctrl.Resize(flags.pageSize)
	}
	ctrl.GoTo(flags.page)

	view := ctrl.Store().View()
	if view.Info.CurrentPage != flags.page {
		logger.Warn().
			Int("requested", flags.page).
			Int("page", view.Info.CurrentPage).
			Msg("page out of range, clamped")
	}

	out := cmd.OutOrStdout()
	switch flags.output {
	case outputJSON:
		return renderListJSON(out, view)
	case outputYAML:
		return renderListYAML(out, view)
	default:
		styled := out == os.Stdout && isTerminal(os.Stdout)
		return renderListText(out, view, message.NewPrinter(language.English), styled)
	}
}

func buildListOutput(view state.View) listOutput {
	items := make([]listItem, 0, len(view.Records))
	for i, rec := range view.Records {
		items = append(items, listItem{
			Number:    view.Info.StartIndex + i + 1,
			ID:        rec.ID.String(),
			Name:      rec.Name,
			CreatedAt: rec.CreatedAt,
		})
	}
	return listOutput{Items: items, PageInfo: view.Info, Sort: view.Mode.String()}
}

func renderListJSON(w io.Writer, view state.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildListOutput(view))
}

func renderListYAML(w io.Writer, view state.View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildListOutput(view)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// renderListText prints a numbered table followed by the page window and
// the item summary. styled adds colour for terminals.
func renderListText(w io.Writer, view state.View, p *message.Printer, styled bool) error {
	if len(view.Records) == 0 {
		_, err := fmt.Fprintln(w, "No names found")
		return err
	}

	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tCreated\tID")
	for i, rec := range view.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", view.Info.StartIndex+i+1, rec.Name, createdLabel(rec), rec.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s  %s\n%s\n",
		view.Info.Position(p),
		pageWindow(view.Info, styled),
		view.Info.Summary(p),
	)
	return err
}

func createdLabel(rec names.Record) string {
	if rec.CreatedAt == "" {
		return "-"
	}
	return rec.ParsedCreatedAt().Local().Format("2006-01-02 15:04")
}

// pageWindow renders "1 … 4 [5] 6 … 10", highlighting the current page
// when styled.
func pageWindow(info paging.Info, styled bool) string {
	current := lipgloss.NewStyle().Bold(true).Reverse(true)
	parts := make([]string, 0, 8)
	for _, item := range paging.Window(info.CurrentPage, info.TotalPages) {
		switch {
		case item.Ellipsis:
			parts = append(parts, "…")
		case item.Current && styled:
			parts = append(parts, current.Render(fmt.Sprintf(" %d ", item.Page)))
		case item.Current:
			parts = append(parts, fmt.Sprintf("[%d]", item.Page))
		default:
			parts = append(parts, fmt.Sprint(item.Page))
		}
	}
	return strings.Join(parts, " ")
}

func modeNames() []string {
	modes := sorting.Modes()
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
