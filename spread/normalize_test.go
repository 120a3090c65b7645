package spread

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/posterior"
)

func TestNormalizeChainDraw(t *testing.T) {
	chain := frame.NewInt64Series("chain", []int64{0, 1}, nil)
	draw := frame.NewInt64Series("draw", []int64{0, 0}, nil)
	mu := frame.NewFloat64Series("mu", []float64{1, 2}, nil)

	tab := posterior.Tabulation{
		Index:   []frame.Series{chain, draw},
		Columns: []frame.Series{chain, draw, mu},
	}

	kept := normalizeChainDraw(tab, false)
	require.Equal(t, []string{"chain", "draw", "mu"}, kept.ColumnNames())

	dropped := normalizeChainDraw(tab, true)
	require.Equal(t, []string{"chain", "draw"}, dropped.IndexNames())
	require.Equal(t, []string{"mu"}, dropped.ColumnNames())
}
