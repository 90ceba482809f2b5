package analysis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	results := []PlayerComparison{
		{
			PlayerID:   15,
			Name:       "Stephen Curry",
			Before:     CategoryStats{Games: 2, AvgPoints: 12.0, AvgRebounds: 5.0, AvgAssists: 4.0},
			After:      CategoryStats{Games: 1, AvgPoints: 20.0, AvgRebounds: 6.0, AvgAssists: 7.0},
			PointsDiff: 8.0, ReboundsDiff: 1.0, AssistsDiff: 3.0,
		},
		{
			PlayerID:   46,
			Name:       "Jayson Tatum",
			Before:     CategoryStats{Games: 1, AvgPoints: 25.0},
			After:      CategoryStats{Games: 1, AvgPoints: 24.0},
			PointsDiff: -1.0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, results))
	out := buf.String()

	assert.Contains(t, out, "PLAYER PERFORMANCE ANALYSIS: BEFORE vs AFTER SUNSET")
	assert.Contains(t, out, "Players with games in both categories: 2")
	assert.Contains(t, out, "Stephen Curry (ID: 15)")
	assert.Contains(t, out, "BEFORE SUNSET (2 games):")
	assert.Contains(t, out, "Points: 12.00 | Rebounds: 5.00 | Assists: 4.00")
	assert.Contains(t, out, "Points: +8.00 | Rebounds: +1.00 | Assists: +3.00")
	assert.Contains(t, out, ">> Performs notably better after sunset (8.00 pts difference)")

	// A one-point swing gets no interpretation line.
	assert.Contains(t, out, "Points: -1.00 |")
	assert.NotContains(t, out, "Jayson Tatum (ID: 46)\n>>")
}

func TestWriteReport_InterpretsLargeDropBeforeSunset(t *testing.T) {
	results := []PlayerComparison{
		{
			PlayerID:   1,
			Name:       "Night Owl",
			Before:     CategoryStats{Games: 3, AvgPoints: 22.0},
			After:      CategoryStats{Games: 3, AvgPoints: 17.0},
			PointsDiff: -5.0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, results))
	assert.Contains(t, buf.String(), ">> Performs notably better before sunset (5.00 pts difference)")
}

func TestWriteReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, nil))
	assert.Contains(t, buf.String(), "No data available for analysis.")
}
