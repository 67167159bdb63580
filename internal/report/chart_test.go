package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChart_Render(t *testing.T) {
	t.Run("Renders every series", func(t *testing.T) {
		// Given: a chart with two windows
		chart := NewChart("training")
		chart.Add(Point{Episode: 100, WinRateA: 0.5, WinRateB: 0.3, DrawRate: 0.2})
		chart.Add(Point{Episode: 200, WinRateA: 0.4, WinRateB: 0.2, DrawRate: 0.4})

		// When: rendering it
		var out bytes.Buffer
		err := chart.Render(&out)

		// Then: the html mentions the series names
		require.NoError(t, err)
		assert.Contains(t, out.String(), "wins O")
		assert.Contains(t, out.String(), "draws")
		assert.Len(t, chart.Points(), 2)
	})

	t.Run("Error on empty chart", func(t *testing.T) {
		err := NewChart("empty").Render(&bytes.Buffer{})

		require.ErrorIs(t, err, ErrNoPoints)
	})
}

func TestChart_Save(t *testing.T) {
	// Given: a chart and a path in a missing directory
	chart := NewChart("training")
	chart.Add(Point{Episode: 10, DrawRate: 1})
	path := filepath.Join(t.TempDir(), "charts", "training.html")

	// When: saving it
	err := chart.Save(path)

	// Then: the file exists and is not empty
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
