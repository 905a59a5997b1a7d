package payroll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

// DisplayName shortens "Jane Doe" to "Jane D". A name without a last part is
// returned as is.
func DisplayName(name string) string {
	first, last := employee.SplitName(name)
	if last == "" {
		return first
	}
	words := strings.Fields(last)
	initial := []rune(words[len(words)-1])[0]
	return first + " " + string(initial)
}

// FormatLine renders "<name>, <hours>[, Bonus, $<amount>][ (Salary)]".
func FormatLine(l Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %.1f", DisplayName(l.Name), l.ExportHours)
	if l.Bonus.IsPositive() {
		fmt.Fprintf(&b, ", Bonus, $%s", l.Bonus.StringFixed(0))
	}
	if l.IsManager {
		b.WriteString(" (Salary)")
	}
	return b.String()
}

// SortLines orders non-managers first, then by name.
func SortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].IsManager != lines[j].IsManager {
			return !lines[i].IsManager
		}
		return lines[i].Name < lines[j].Name
	})
}

// FormatExport sorts a copy of lines and joins their formatted text with newlines.
func FormatExport(lines []Line) string {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	SortLines(sorted)

	out := make([]string, 0, len(sorted))
	for _, l := range sorted {
		out = append(out, FormatLine(l))
	}
	return strings.Join(out, "\n")
}
