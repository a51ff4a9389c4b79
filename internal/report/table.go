package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/vibe-eval/internal/aggregate"
)

// WriteTable renders one row per evaluated file with a column per
// category plus the pooled overall score. Categories keep their
// first-appearance order across entries.
func WriteTable(w io.Writer, entries []Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Judged Results ===\n\n")

	categories := categoryOrder(entries)

	header := []string{"File"}
	for _, c := range categories {
		header = append(header, c)
	}
	header = append(header, "Overall", "Matched", "Excluded")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, e := range entries {
		byName := make(map[string]aggregate.CategoryStat, len(e.Result.Categories))
		for _, cs := range e.Result.Categories {
			byName[cs.Name] = cs
		}

		row := []string{e.Name}
		for _, c := range categories {
			cs, ok := byName[c]
			if !ok {
				row = append(row, "N/A")
				continue
			}
			row = append(row, fmtPercent(cs.Percentage))
		}
		excluded := e.Result.Missing + e.Result.Malformed
		row = append(row,
			fmtPercent(e.Result.Overall.Percentage),
			fmt.Sprintf("%d", e.Result.Overall.Count),
			fmt.Sprintf("%d", excluded),
		)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func categoryOrder(entries []Entry) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, cs := range e.Result.Categories {
			if _, ok := seen[cs.Name]; ok {
				continue
			}
			seen[cs.Name] = struct{}{}
			order = append(order, cs.Name)
		}
	}
	return order
}

func fmtPercent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *p)
}
