package analysis

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCharts(t *testing.T) {
	results := []PlayerComparison{
		{
			PlayerID:   15,
			Name:       "Stephen Curry",
			Before:     CategoryStats{Games: 3, AvgPoints: 24.0, AvgRebounds: 4.5, AvgAssists: 6.0},
			After:      CategoryStats{Games: 2, AvgPoints: 31.0, AvgRebounds: 5.0, AvgAssists: 7.5},
			PointsDiff: 7.0, ReboundsDiff: 0.5, AssistsDiff: 1.5,
		},
		{
			PlayerID:   46,
			Name:       "Jayson Tatum",
			Before:     CategoryStats{Games: 2, AvgPoints: 28.0, AvgRebounds: 8.0, AvgAssists: 4.0},
			After:      CategoryStats{Games: 3, AvgPoints: 23.5, AvgRebounds: 7.0, AvgAssists: 4.5},
			PointsDiff: -4.5, ReboundsDiff: -1.0, AssistsDiff: 0.5,
		},
		{
			PlayerID:   53,
			Name:       "Luka Doncic",
			Before:     CategoryStats{Games: 1, AvgPoints: 30.0, AvgRebounds: 9.0, AvgAssists: 8.0},
			After:      CategoryStats{Games: 1, AvgPoints: 32.0, AvgRebounds: 8.5, AvgAssists: 9.0},
			PointsDiff: 2.0, ReboundsDiff: -0.5, AssistsDiff: 1.0,
		},
	}

	path := filepath.Join(t.TempDir(), "charts.png")
	require.NoError(t, RenderCharts(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err, "Output must be a decodable PNG")

	bounds := img.Bounds()
	assert.Equal(t, gridCols*panelWidth, bounds.Dx())
	assert.Equal(t, 2*panelHeight, bounds.Dy(), "Five panels lay out on two rows")
}

func TestRenderCharts_NoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.png")
	err := RenderCharts(path, nil)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "No file should be written without data")
}

func TestLastName(t *testing.T) {
	assert.Equal(t, "Curry", lastName("Stephen Curry"))
	assert.Equal(t, "Gilgeous-Alexander", lastName("Shai Gilgeous-Alexander"))
	assert.Equal(t, "Nene", lastName("Nene"))
}
