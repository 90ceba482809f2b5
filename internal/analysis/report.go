package analysis

import (
	"fmt"
	"io"
	"math"
)

const reportRule = "================================================================================"
const playerRule = "--------------------------------------------------------------------------------"

// WriteReport renders the ranked before/after comparison as plain text.
func WriteReport(w io.Writer, results []PlayerComparison) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No data available for analysis.")
		return err
	}

	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "PLAYER PERFORMANCE ANALYSIS: BEFORE vs AFTER SUNSET")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "\nPlayers with games in both categories: %d\n", len(results))

	for _, r := range results {
		fmt.Fprintf(w, "\n%s (ID: %d)\n", r.Name, r.PlayerID)
		fmt.Fprintln(w, playerRule)
		fmt.Fprintf(w, "BEFORE SUNSET (%d games):\n", r.Before.Games)
		fmt.Fprintf(w, "  Points: %.2f | Rebounds: %.2f | Assists: %.2f\n",
			r.Before.AvgPoints, r.Before.AvgRebounds, r.Before.AvgAssists)
		fmt.Fprintf(w, "AFTER SUNSET (%d games):\n", r.After.Games)
		fmt.Fprintf(w, "  Points: %.2f | Rebounds: %.2f | Assists: %.2f\n",
			r.After.AvgPoints, r.After.AvgRebounds, r.After.AvgAssists)
		fmt.Fprintln(w, "DIFFERENCE (after - before):")
		fmt.Fprintf(w, "  Points: %+.2f | Rebounds: %+.2f | Assists: %+.2f\n",
			r.PointsDiff, r.ReboundsDiff, r.AssistsDiff)

		if math.Abs(r.PointsDiff) > 2 {
			if r.PointsDiff > 0 {
				fmt.Fprintf(w, "  >> Performs notably better after sunset (%.2f pts difference)\n", r.PointsDiff)
			} else {
				fmt.Fprintf(w, "  >> Performs notably better before sunset (%.2f pts difference)\n", -r.PointsDiff)
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", reportRule)
	return err
}
