package printers

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/view"
)

// PrettyPrint renders composed collection views for the terminal.
type PrettyPrint struct {
	ShowIndex bool
	// Fields restricts the table columns. Empty means every field seen
	// across the view, sorted.
	Fields []string
}

// Title prints a collection heading, marking shuffled and filtered
// views so the ordering is explainable at a glance.
func (pp *PrettyPrint) Title(title string, v view.View, filter string) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Print(title)
	if v.IsShuffled {
		_, _ = f.Printf("  seed %d", *v.OrderHash)
	}
	if filter != "" {
		_, _ = f.Printf("  filter %s", filter)
	}
	_, _ = fmt.Fprintln(color.Output, "")
}

// View prints the cards of a composed view as a table.
func (pp *PrettyPrint) View(v view.View) {
	if len(v.Cards) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	fields := pp.Fields
	if len(fields) == 0 {
		fields = unionFields(v.Cards)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.Wrap = true

	header := make([]interface{}, 0, len(fields)+1)
	if pp.ShowIndex {
		header = append(header, bold("#"))
	}
	for _, f := range fields {
		header = append(header, bold(f))
	}
	tbl.AddRow(header...)

	for i, c := range v.Cards {
		row := make([]interface{}, 0, len(fields)+1)
		if pp.ShowIndex {
			row = append(row, fmt.Sprintf("%d", v.Indices[i]))
		}
		for _, f := range fields {
			row = append(row, c.String(f))
		}
		tbl.AddRow(row...)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Summary prints a one-line aggregate for a collection.
func (pp *PrettyPrint) Summary(name string, category string, total, learned, focus int) {
	t := color.New()
	f := color.New(color.Faint)
	_, _ = t.Printf("%-30s", name)
	_, _ = f.Printf("  %-12s", category)
	_, _ = t.Printf("  %4d cards", total)
	if learned >= 0 {
		_, _ = f.Printf("  %4d learned  %4d focus", learned, focus)
	}
	_, _ = fmt.Fprintln(color.Output, "")
}

func unionFields(cards []card.Card) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, c := range cards {
		for _, f := range c.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	// Fields() is sorted per card; the union across cards is not, so a
	// final pass keeps column order stable between runs.
	sort.Strings(fields)
	return fields
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
