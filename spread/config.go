package spread

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/tidydraws/errs"
	"github.com/arloliu/tidydraws/internal/options"
	"github.com/arloliu/tidydraws/posterior"
)

// Config holds the resolved settings of one extraction.
type Config struct {
	group         string
	combined      bool
	varNames      []string
	filterVars    posterior.FilterMode
	numSamples    int
	rng           posterior.RNG
	dropChainDraw bool
	dimNames      map[string][]string
	logger        Logger
}

// Option configures an extraction.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		group:    posterior.GroupPosterior,
		combined: true,
		dimNames: make(map[string][]string),
		logger:   nopLogger{},
	}
}

// NewConfig resolves opts over the defaults.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Group returns the group to extract from.
func (c *Config) Group() string { return c.group }

// Combined reports whether chain and draw are stacked into one sample axis.
func (c *Config) Combined() bool { return c.combined }

// DropChainDraw reports whether ordinary chain and draw columns are removed.
func (c *Config) DropChainDraw() bool { return c.dropChainDraw }

// DimNames returns the dimension-name override for variable, or nil.
func (c *Config) DimNames(variable string) []string {
	return slices.Clone(c.dimNames[variable])
}

// Logger returns the configured logger, never nil.
func (c *Config) Logger() Logger { return c.logger }

// ExtractConfig returns the query sent to the posterior source.
func (c *Config) ExtractConfig() posterior.ExtractConfig {
	return posterior.ExtractConfig{
		Combined:   c.combined,
		VarNames:   slices.Clone(c.varNames),
		FilterVars: c.filterVars,
		NumSamples: c.numSamples,
		RNG:        c.rng,
	}
}

// overridden returns the variables with dimension-name overrides, sorted.
func (c *Config) overridden() []string {
	return slices.Sorted(maps.Keys(c.dimNames))
}

// WithGroup selects the group to extract from. Default: "posterior".
func WithGroup(group string) Option {
	return options.New(func(c *Config) error {
		if group == "" {
			return fmt.Errorf("%w: group name must not be empty", errs.ErrInvalidName)
		}
		c.group = group

		return nil
	})
}

// WithCombined stacks the chain and draw axes into one sample axis.
// Default: true.
func WithCombined(combined bool) Option {
	return options.NoError(func(c *Config) {
		c.combined = combined
	})
}

// WithVarNames selects variables. Empty selects all; names prefixed with
// "~" are excluded instead.
func WithVarNames(names ...string) Option {
	return options.NoError(func(c *Config) {
		c.varNames = slices.Clone(names)
	})
}

// WithFilterVars sets how variable names are matched. Default: exact.
func WithFilterVars(mode posterior.FilterMode) Option {
	return options.New(func(c *Config) error {
		if mode > posterior.FilterRegex {
			return fmt.Errorf("%w: unknown filter mode %d", errs.ErrInvalidSelection, mode)
		}
		c.filterVars = mode

		return nil
	})
}

// WithNumSamples keeps a random subset of n samples. Zero keeps all.
func WithNumSamples(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: number of samples must not be negative, got %d", errs.ErrInvalidSelection, n)
		}
		c.numSamples = n

		return nil
	})
}

// WithRNG sets how the sample subset is drawn.
func WithRNG(rng posterior.RNG) Option {
	return options.NoError(func(c *Config) {
		c.rng = rng
	})
}

// WithSeed makes subsampling reproducible. It is WithRNG(posterior.Seed(seed)).
func WithSeed(seed uint64) Option {
	return WithRNG(posterior.Seed(seed))
}

// WithDropChainDraw removes ordinary chain and draw columns even when the
// samples are not combined. Needed when the source is an already stacked
// dataset.
func WithDropChainDraw(drop bool) Option {
	return options.NoError(func(c *Config) {
		c.dropChainDraw = drop
	})
}

// WithDimNames names the non-sample dimensions of variable explicitly. The
// count must match the variable's dimensions at extraction time.
func WithDimNames(variable string, names ...string) Option {
	return options.New(func(c *Config) error {
		if variable == "" {
			return fmt.Errorf("%w: dimension names need a variable", errs.ErrInvalidName)
		}
		c.dimNames[variable] = slices.Clone(names)

		return nil
	})
}

// WithLogger sets the logger. nil restores the no-op default.
func WithLogger(logger Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
		if c.logger == nil {
			c.logger = nopLogger{}
		}
	})
}
