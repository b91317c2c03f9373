// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/presentation"
	"github.com/jonathan/admissions-advisor/internal/types"
	"golang.org/x/text/width"
)

const (
	// boxWidth is the default width for formatted output boxes, in terminal columns
	boxWidth = 72
	// innerWidth is the text width inside a box
	innerWidth = boxWidth - 4
)

// Printer handles formatted output for the recommend command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// runeWidth is the number of terminal columns r occupies.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// displayWidth is the number of terminal columns s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// wrapLine splits line into pieces no wider than cols columns.
func wrapLine(line string, cols int) []string {
	if displayWidth(line) <= cols {
		return []string{line}
	}
	var (
		lines []string
		sb    strings.Builder
		used  int
	)
	for _, r := range line {
		w := runeWidth(r)
		if used+w > cols {
			lines = append(lines, sb.String())
			sb.Reset()
			used = 0
		}
		sb.WriteRune(r)
		used += w
	}
	if sb.Len() > 0 {
		lines = append(lines, sb.String())
	}
	return lines
}

func pad(s string, cols int) string {
	return s + strings.Repeat(" ", max(cols-displayWidth(s), 0))
}

// printBox prints a formatted box with a title and content. Long lines wrap.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, innerWidth))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, piece := range wrapLine(line, innerWidth) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(piece, innerWidth))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs the profile a search was submitted with.
func (p *Printer) PrintRequest(scores types.ScoreInput, in types.RecommendInput) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Test:      %s\n", scores.Kind))
	for _, f := range scores.Fields() {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", f.Name, f.Value))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Province:  %s\n", orDash(in.Province)))
	sb.WriteString(fmt.Sprintf("City:      %s\n", orDash(in.CityPreference)))
	sb.WriteString(fmt.Sprintf("Subjects:  %s\n", orDash(strings.Join(in.Subjects, ", "))))
	sb.WriteString(fmt.Sprintf("Vibe:      %s", orDash(string(in.Vibe))))

	p.printBox("SEARCH PROFILE", sb.String())
}

// PrintSummary outputs the advisor's overall assessment.
func (p *Printer) PrintSummary(summary string) {
	if summary == "" {
		return
	}
	p.printBox("SUMMARY", summary)
}

// PrintUniversities outputs one entry per university in the given order.
func (p *Printer) PrintUniversities(universities []types.University, sort presentation.SortState) {
	if len(universities) == 0 {
		p.printBox("RECOMMENDATIONS", "No universities matched within the QS top 200.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d universities, sorted by %s (%s)\n\n", len(universities), sort.Key, sort.Direction))

	cards := presentation.Cards(universities)
	for i, card := range cards {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, card.Title, card.Probability))
		if card.Subtitle != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", card.Subtitle))
		}
		sb.WriteString(fmt.Sprintf("   %s | %s\n", card.RankText, orDash(card.Location)))
		sb.WriteString(fmt.Sprintf("   IELTS %s | TOEFL %s\n", card.MinIELTS, card.MinTOEFL))
		if len(card.Majors) > 0 {
			sb.WriteString(fmt.Sprintf("   Majors: %s\n", strings.Join(card.Majors, ", ")))
		}
		if card.Reasoning != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", card.Reasoning))
		}
		if card.Website != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", card.Website))
		}
		if i < len(cards)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintView outputs the summary and results of a finished search.
func (p *Printer) PrintView(view presentation.View) {
	if view.Error != "" {
		p.printBox("SEARCH FAILED", view.Error)
		return
	}
	p.PrintSummary(view.Summary)
	p.PrintUniversities(view.Universities, view.Sort)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
