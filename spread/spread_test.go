package spread_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tidydraws/errs"
	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/internal/testutil"
	"github.com/arloliu/tidydraws/posterior"
	"github.com/arloliu/tidydraws/spread"
)

type logRecord struct {
	level string
	msg   string
	args  []any
}

type spyLogger struct {
	records []logRecord
}

func (l *spyLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *spyLogger) Info(msg string, args ...any) { l.add("info", msg, args) }
func (l *spyLogger) Warn(msg string, args ...any) { l.add("warn", msg, args) }
func (l *spyLogger) Error(msg string, args ...any) { l.add("error", msg, args) }

func (l *spyLogger) add(level, msg string, args []any) {
	l.records = append(l.records, logRecord{level: level, msg: msg, args: args})
}

func TestDrawsWithIndex_IndexCompleteness(t *testing.T) {
	for _, combined := range []bool{true, false} {
		t.Run(fmt.Sprintf("combined=%t", combined), func(t *testing.T) {
			tbl, index, err := spread.DrawsWithIndex(testutil.Synthetic(2, 3), spread.WithCombined(combined))
			require.NoError(t, err)

			require.Equal(t, []string{"chain", "draw", "school", "sigma_dim_0", "sigma_dim_1"}, index)
			require.Equal(t, append(index, "mu", "theta", "sigma"), tbl.ColumnNames())

			// samples x schools x sigma rows x sigma cols
			require.Equal(t, 6*3*2*2, tbl.NumRows())
			require.NoError(t, tbl.CheckUnique(index...))

			chain, _, err := tbl.Int64s("chain")
			require.NoError(t, err)
			draw, _, err := tbl.Int64s("draw")
			require.NoError(t, err)
			school, _, err := tbl.Int64s("school")
			require.NoError(t, err)
			i, _, err := tbl.Int64s("sigma_dim_0")
			require.NoError(t, err)
			j, _, err := tbl.Int64s("sigma_dim_1")
			require.NoError(t, err)
			mu, _, err := tbl.Float64s("mu")
			require.NoError(t, err)
			theta, _, err := tbl.Float64s("theta")
			require.NoError(t, err)
			sigma, _, err := tbl.Float64s("sigma")
			require.NoError(t, err)

			for r := range mu {
				s := float64(chain[r]*3 + draw[r])
				require.Equal(t, s, mu[r], "row %d", r)
				require.Equal(t, 10*s+float64(school[r]), theta[r], "row %d", r)
				require.Equal(t, 100*s+float64(10*i[r]+j[r]), sigma[r], "row %d", r)
			}
		})
	}
}

func TestDrawsWithIndex_StringCoords(t *testing.T) {
	tbl, index, err := spread.DrawsWithIndex(testutil.MustLoad(testutil.EightSchools),
		spread.WithVarNames("theta"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"chain", "draw", "school"}, index)
	require.Equal(t, 12, tbl.NumRows())

	v, err := tbl.Value(1, "school")
	require.NoError(t, err)
	require.Equal(t, "Deerfield", v)

	v, err = tbl.Value(1, "theta")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestDraws_Selection(t *testing.T) {
	data := testutil.MustLoad(testutil.EightSchools)

	tbl, err := spread.Draws(data,
		spread.WithVarNames("t"),
		spread.WithFilterVars(posterior.FilterLike),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"chain", "draw", "school", "tau", "theta"}, tbl.ColumnNames())

	tbl, err = spread.Draws(data, spread.WithVarNames("~theta"))
	require.NoError(t, err)
	require.Equal(t, []string{"chain", "draw", "mu", "tau"}, tbl.ColumnNames())
	require.Equal(t, 6, tbl.NumRows())

	tbl, err = spread.Draws(data, spread.WithGroup(posterior.GroupPrior))
	require.NoError(t, err)
	require.Equal(t, []string{"chain", "draw", "mu"}, tbl.ColumnNames())
	require.Equal(t, 2, tbl.NumRows())
}

func TestDraws_Reproducible(t *testing.T) {
	data := testutil.Synthetic(4, 100)
	draws := func(seed uint64) *frame.Table {
		tbl, err := spread.Draws(data,
			spread.WithVarNames("mu"),
			spread.WithNumSamples(10),
			spread.WithSeed(seed),
		)
		require.NoError(t, err)

		return tbl
	}

	a, b, c := draws(42), draws(42), draws(43)
	require.True(t, a.Equal(b))
	require.Equal(t, a.ColumnNames(), c.ColumnNames())
	require.Equal(t, 10, c.NumRows())
	require.False(t, a.Equal(c))
}

func TestDraws_NoShuffle(t *testing.T) {
	tbl, err := spread.Draws(testutil.Synthetic(2, 5),
		spread.WithVarNames("mu"),
		spread.WithNumSamples(3),
		spread.WithRNG(posterior.NoShuffle()),
	)
	require.NoError(t, err)

	mu, _, err := tbl.Float64s("mu")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, mu)
}

func TestDraws_StackedSource(t *testing.T) {
	data := testutil.MustLoad(testutil.EightSchools)
	stacked, err := data.Extract(posterior.GroupPosterior, posterior.ExtractConfig{Combined: true})
	require.NoError(t, err)

	t.Run("duplicate chain and draw columns", func(t *testing.T) {
		_, err := spread.Draws(stacked, spread.WithCombined(false), spread.WithVarNames("mu"))
		require.ErrorIs(t, err, errs.ErrDuplicateColumn)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("drop flag removes them", func(t *testing.T) {
		tbl, err := spread.Draws(stacked,
			spread.WithCombined(false),
			spread.WithDropChainDraw(true),
			spread.WithVarNames("mu"),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"chain", "draw", "mu"}, tbl.ColumnNames())
		require.Equal(t, 6, tbl.NumRows())
	})

	t.Run("combined always drops them", func(t *testing.T) {
		tbl, err := spread.Draws(stacked, spread.WithVarNames("mu"))
		require.NoError(t, err)
		require.Equal(t, []string{"chain", "draw", "mu"}, tbl.ColumnNames())
	})
}

func TestDraws_DimNames(t *testing.T) {
	data := testutil.Synthetic(1, 2)

	t.Run("renames index columns", func(t *testing.T) {
		_, index, err := spread.DrawsWithIndex(data,
			spread.WithVarNames("sigma"),
			spread.WithDimNames("sigma", "row", "col"),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"chain", "draw", "row", "col"}, index)
	})

	t.Run("unselected variables are ignored", func(t *testing.T) {
		_, index, err := spread.DrawsWithIndex(data,
			spread.WithVarNames("mu"),
			spread.WithDimNames("sigma", "row", "col"),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"chain", "draw"}, index)
	})

	t.Run("count mismatch", func(t *testing.T) {
		_, err := spread.Draws(data, spread.WithDimNames("sigma", "row"))
		require.ErrorIs(t, err, errs.ErrDimNameCount)
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err,
			`validation failed: incorrect number of dimension names provided for variable "sigma": got 1, want 2`)
	})

	t.Run("shared name with other labels", func(t *testing.T) {
		_, err := spread.Draws(data, spread.WithDimNames("sigma", "school", "col"))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("empty variable", func(t *testing.T) {
		_, err := spread.Draws(data, spread.WithDimNames("", "row"))
		require.ErrorIs(t, err, errs.ErrInvalidName)
	})
}

func TestDraws_Errors(t *testing.T) {
	data := testutil.MustLoad(testutil.EightSchools)

	cases := []struct {
		name string
		opts []spread.Option
		want error
	}{
		{"unknown group", []spread.Option{spread.WithGroup("warmup")}, errs.ErrGroupNotFound},
		{"unknown variable", []spread.Option{spread.WithVarNames("sigma")}, errs.ErrVariableNotFound},
		{"filter matches nothing", []spread.Option{
			spread.WithVarNames("^z"), spread.WithFilterVars(posterior.FilterRegex),
		}, errs.ErrVariableNotFound},
		{"bad regex", []spread.Option{
			spread.WithVarNames("(mu"), spread.WithFilterVars(posterior.FilterRegex),
		}, errs.ErrInvalidPattern},
		{"mixed negation", []spread.Option{spread.WithVarNames("mu", "~tau")}, errs.ErrInvalidSelection},
		{"too many samples", []spread.Option{spread.WithNumSamples(7)}, errs.ErrSampleCount},
		{"too many draws", []spread.Option{spread.WithCombined(false), spread.WithNumSamples(4)}, errs.ErrSampleCount},
		{"negative samples", []spread.Option{spread.WithNumSamples(-1)}, errs.ErrInvalidSelection},
		{"empty group", []spread.Option{spread.WithGroup("")}, errs.ErrInvalidName},
		{"unknown filter", []spread.Option{spread.WithFilterVars(posterior.FilterMode(7))}, errs.ErrInvalidSelection},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl, err := spread.Draws(data, tc.opts...)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, tbl)
		})
	}
}

func TestDraws_DuplicateCoordinates(t *testing.T) {
	theta, err := posterior.NewVariable("theta", []int{1, 1, 2}, []float64{1, 2}, "school")
	require.NoError(t, err)

	data := posterior.New()
	g, err := data.AddGroup(posterior.GroupPosterior, theta)
	require.NoError(t, err)
	require.NoError(t, g.SetCoords("school", posterior.StringCoords("Choate", "Choate")))

	_, err = spread.Draws(data)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Contains(t, err.Error(), "(0, 0, Choate)")
}

func TestDraws_ControlBytesInCoordinates(t *testing.T) {
	theta, err := posterior.NewVariable("theta", []int{1, 1, 2, 2}, []float64{1, 2, 3, 4}, "x", "y")
	require.NoError(t, err)

	data := posterior.New()
	g, err := data.AddGroup(posterior.GroupPosterior, theta)
	require.NoError(t, err)
	require.NoError(t, g.SetCoords("x", posterior.StringCoords("p\x1fq", "p")))
	require.NoError(t, g.SetCoords("y", posterior.StringCoords("r", "q\x1fr")))

	tbl, err := spread.Draws(data)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.NumRows())

	xs, _, err := tbl.Strings("x")
	require.NoError(t, err)
	require.Equal(t, []string{"p\x1fq", "p\x1fq", "p", "p"}, xs)
}

func TestDraws_Logger(t *testing.T) {
	logger := &spyLogger{}

	_, err := spread.Draws(testutil.MustLoad(testutil.EightSchools), spread.WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, logger.records, 1)
	require.Equal(t, "debug", logger.records[0].level)
	require.Equal(t, "extracted draws", logger.records[0].msg)
	require.Contains(t, logger.records[0].args, "rows")

	_, err = spread.Draws(testutil.MustLoad(testutil.EightSchools), spread.WithLogger(nil))
	require.NoError(t, err)
}

func TestNewConfig(t *testing.T) {
	cfg, err := spread.NewConfig()
	require.NoError(t, err)
	require.Equal(t, "posterior", cfg.Group())
	require.True(t, cfg.Combined())
	require.False(t, cfg.DropChainDraw())
	require.Nil(t, cfg.DimNames("sigma"))
	require.NotNil(t, cfg.Logger())

	cfg, err = spread.NewConfig(
		spread.WithGroup("prior"),
		spread.WithCombined(false),
		spread.WithVarNames("mu"),
		spread.WithNumSamples(3),
		spread.WithSeed(9),
		spread.WithDimNames("sigma", "row", "col"),
	)
	require.NoError(t, err)
	require.Equal(t, "prior", cfg.Group())
	require.Equal(t, []string{"row", "col"}, cfg.DimNames("sigma"))

	ec := cfg.ExtractConfig()
	require.False(t, ec.Combined)
	require.Equal(t, []string{"mu"}, ec.VarNames)
	require.Equal(t, 3, ec.NumSamples)
	require.Equal(t, posterior.Seed(9), ec.RNG)
}
