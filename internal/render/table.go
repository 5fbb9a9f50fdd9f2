// Package render formats analysis results as tabular text and chart markup.
//
// Everything here is presentational. In particular the trading-to-calendar
// day conversion lives only in this package; the core pipeline works in
// trading days throughout.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bernie-sg/riley-cycles-watch/peaks"
)

// CalendarFactor converts trading days to approximate calendar days.
const CalendarFactor = 1.451

// CalendarDays converts a trading-day period for display.
func CalendarDays(tradingDays int) int {
	return int(float64(tradingDays) * CalendarFactor)
}

// PeakTable writes the ranked peak list as an aligned table.
//
// scores carries optional Bartels scores aligned with pks; pass nil to omit
// the column.
func PeakTable(w io.Writer, pks []peaks.Peak, scores []float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if scores != nil {
		fmt.Fprintln(tw, "#\tTRADING\tCALENDAR\tPOWER\tTIER\tBARTELS")
	} else {
		fmt.Fprintln(tw, "#\tTRADING\tCALENDAR\tPOWER\tTIER")
	}

	for i, p := range pks {
		row := fmt.Sprintf("%d\t%dd\t%dd\t%.1f%%\t%s",
			i+1, p.Period, CalendarDays(p.Period), p.Power*100, tierLabel(p.Tier))

		if scores != nil {
			mark := ""
			if !peaks.Genuine(scores[i]) {
				mark = " (spurious)"
			}
			row += fmt.Sprintf("\t%.0f%%%s", scores[i], mark)
		}

		fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

func tierLabel(t peaks.Tier) string {
	switch t {
	case peaks.TierPrimary:
		return "*** PRIMARY"
	case peaks.TierSecondary:
		return "** SECONDARY"
	case peaks.TierTertiary:
		return "* TERTIARY"
	default:
		return "-"
	}
}
