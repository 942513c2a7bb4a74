package pretty

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // ORIGINAL, KEPT, REPLACED, RECURSED, STATUS
	minOriginalWidth = 24
	minCountWidth    = 8
	minStatusWidth   = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// BatchRow represents a single reconciled pair's outcome in the batch
// stats table.
type BatchRow struct {
	Original string
	Stats    reconcile.Stats
	Err      string
}

// StatsTableFormatter formats a batch run's per-pair stats as a styled
// table.
type StatsTableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewStatsTableFormatter creates a new stats table formatter.
func NewStatsTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *StatsTableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &StatsTableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// DefaultTermWidth returns stdout's terminal width, falling back to a
// fixed default when stdout isn't a terminal or the size can't be read.
func DefaultTermWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultTermWidth
}

type statsColumnWidths struct {
	original int
	count    int
	status   int
}

// FormatBatchTable formats rows as a styled table, one row per
// reconciled (or failed) pair.
func (t *StatsTableFormatter) FormatBatchTable(rows []BatchRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *StatsTableFormatter) calculateColumnWidths(rows []BatchRow) statsColumnWidths {
	widths := statsColumnWidths{
		original: minOriginalWidth,
		count:    minCountWidth,
		status:   minStatusWidth,
	}

	for _, row := range rows {
		if len(row.Original) > widths.original {
			widths.original = len(row.Original)
		}
	}

	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.original = max(minOriginalWidth, widths.original-excess)
	}

	return widths
}

func (t *StatsTableFormatter) calculateTotalWidth(widths statsColumnWidths) int {
	return widths.original + widths.count*3 + widths.status + (tablePadding * tableColumnCount)
}

func (t *StatsTableFormatter) formatHeader(widths statsColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s   ",
		widths.original, "ORIGINAL",
		widths.count, "KEPT",
		widths.count, "REPLACED",
		widths.count, "RECURSED",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *StatsTableFormatter) formatSeparator(widths statsColumnWidths, char string) string {
	sep := strings.Repeat(char, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

func (t *StatsTableFormatter) formatRow(row BatchRow, widths statsColumnWidths) string {
	original := truncateFilePath(row.Original, widths.original)

	status := "ok"
	statusStyle := t.styles.Success
	if row.Err != "" {
		status = "failed"
		statusStyle = t.styles.Failure
	}

	kept := row.Stats.BlocksKept + row.Stats.InlinesKept
	replaced := row.Stats.BlocksReplaced + row.Stats.InlinesReplaced
	recursed := row.Stats.BlocksRecursed + row.Stats.InlinesRecursed

	content := fmt.Sprintf(" %-*s  %-*d  %-*d  %-*d  %s",
		widths.original, original,
		widths.count, kept,
		widths.count, replaced,
		widths.count, recursed,
		statusStyle.Render(fmt.Sprintf("%-*s", widths.status, status)),
	)

	if row.Err != "" {
		content += "\n   " + t.styles.TableErrorRow.Render(truncateString(row.Err, t.termWidth-3))
	}

	return content
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if maxLen <= 0 || len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename)
// rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
