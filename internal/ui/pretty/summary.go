package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
)

const summaryDividerWidth = 40

// FormatStatsSummary formats aggregate reconciliation stats as a single
// summary block: one line per pair count, then the block/inline role
// tallies, then an overall pass/fail line.
func (s *Styles) FormatStatsSummary(total reconcile.Stats, totalPairs, failed int) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Pairs reconciled:  " +
		s.SummaryValue.Render(strconv.Itoa(totalPairs-failed)) + "\n")
	if failed > 0 {
		builder.WriteString("  Pairs failed:      " +
			s.Failure.Render(strconv.Itoa(failed)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Blocks kept:       " + s.Kept.Render(strconv.Itoa(total.BlocksKept)) + "\n")
	builder.WriteString("  Blocks replaced:   " + s.Replaced.Render(strconv.Itoa(total.BlocksReplaced)) + "\n")
	builder.WriteString("  Blocks recursed:   " + s.Recursed.Render(strconv.Itoa(total.BlocksRecursed)) + "\n")
	builder.WriteString("  Inlines kept:      " + s.Kept.Render(strconv.Itoa(total.InlinesKept)) + "\n")
	builder.WriteString("  Inlines replaced:  " + s.Replaced.Render(strconv.Itoa(total.InlinesReplaced)) + "\n")
	builder.WriteString("  Inlines recursed:  " + s.Recursed.Render(strconv.Itoa(total.InlinesRecursed)) + "\n")
	if total.HashCollisions > 0 {
		builder.WriteString("  Hash collisions:   " + s.Collided.Render(strconv.Itoa(total.HashCollisions)) + "\n")
	}

	builder.WriteString("\n")
	switch {
	case failed > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Reconciliation failed on %d of %d pairs", failed, totalPairs)))
	default:
		builder.WriteString(s.Success.Render("Reconciliation passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
