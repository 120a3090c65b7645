package gather

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/errs"
	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/internal/options"
	"github.com/arloliu/tidydraws/posterior"
	"github.com/arloliu/tidydraws/spread"
)

// Logger receives diagnostic records. *slog.Logger satisfies it.
type Logger = spread.Logger

// Config holds the resolved settings of a gather.
type Config struct {
	index        frame.Selector
	indexSet     bool
	valueName    string
	variableName string
	logger       Logger
	spread       []spread.Option
}

// Option configures a gather.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		index:        frame.ByNameOptional(posterior.ChainDim, posterior.DrawDim),
		valueName:    "value",
		variableName: "variable",
		logger:       spread.NopLogger(),
	}
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithIndex selects the index columns of Variables. Default: chain and
// draw, whichever are present. Draws ignores it and uses the index of
// each extracted variable.
func WithIndex(sel frame.Selector) Option {
	return options.NoError(func(c *Config) {
		c.index = sel
		c.indexSet = true
	})
}

// WithValueName names the value column. Default: "value".
func WithValueName(name string) Option {
	return options.New(func(c *Config) error {
		if name == "" {
			return fmt.Errorf("%w: value_name must not be empty", errs.ErrInvalidName)
		}
		c.valueName = name

		return nil
	})
}

// WithVariableName names the variable column. Default: "variable".
func WithVariableName(name string) Option {
	return options.New(func(c *Config) error {
		if name == "" {
			return fmt.Errorf("%w: variable_name must not be empty", errs.ErrInvalidName)
		}
		c.variableName = name

		return nil
	})
}

// WithLogger sets the logger. nil restores the no-op default.
func WithLogger(logger Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
		if c.logger == nil {
			c.logger = spread.NopLogger()
		}
	})
}

// WithSpread sets the extraction options used by Draws: group, combined,
// variable selection, subsampling and dimension names.
func WithSpread(opts ...spread.Option) Option {
	return options.NoError(func(c *Config) {
		c.spread = append(c.spread, opts...)
	})
}

// checkNames rejects output names that repeat an index column.
func (c *Config) checkNames(index []string) error {
	for _, arg := range []struct{ name, value string }{
		{"value_name", c.valueName},
		{"variable_name", c.variableName},
	} {
		if slices.Contains(index, arg.value) {
			return fmt.Errorf("%w: specified %s='%s' for the output table but there is an index column named '%s' "+
				"in the input table; either specify a different %s or rename the index column named '%s'",
				errs.ErrNameCollision, arg.name, arg.value, arg.value, arg.name, arg.value)
		}
	}

	if c.valueName == c.variableName {
		return fmt.Errorf("%w: value_name and variable_name are both '%s'", errs.ErrDuplicateColumn, c.valueName)
	}

	return nil
}
