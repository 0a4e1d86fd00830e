package main

import (
	"context"
	"strings"
	"sync"

	"github.com/clipsmith/clipsmith/internal/config"
	"github.com/clipsmith/clipsmith/internal/logging"
)

// commandContext lazily loads and shares configuration and the logger
// across subcommands. Config loading happens at most once per process.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	colorFlag   *string
	logFileFlag *string

	once   sync.Once
	config *config.Config
	logger *logging.Logger
	err    error
}

func newCommandContext(configFlag *string, verboseFlag *bool, colorFlag, logFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		colorFlag:   colorFlag,
		logFileFlag: logFileFlag,
	}
}

// ensure loads config (file + environment), applies persistent flag
// overrides, validates, and builds the logger.
func (c *commandContext) ensure(ctx context.Context) (*config.Config, *logging.Logger, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(ctx, path)
		if err != nil {
			c.err = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Verbose = true
		}
		if c.colorFlag != nil && *c.colorFlag != "" {
			cfg.ColorMode = config.ColorMode(*c.colorFlag)
		}
		if c.logFileFlag != nil && *c.logFileFlag != "" {
			cfg.LogFile = *c.logFileFlag
		}
		if err := cfg.Validate(); err != nil {
			c.err = err
			return
		}
		log, err := logging.NewLogger(&cfg)
		if err != nil {
			c.err = err
			return
		}
		c.config = &cfg
		c.logger = log
	})
	return c.config, c.logger, c.err
}
