package main

import (
	"scribe/internal/config"
)

// commandContext loads configuration on first use so that commands
// which never touch config (help, completion) work without one.
type commandContext struct {
	configFlag *string

	cfg       *config.Config
	cfgPath   string
	cfgExists bool
	cfgErr    error
	loaded    bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if !c.loaded {
		path := ""
		if c.configFlag != nil {
			path = *c.configFlag
		}
		c.cfg, c.cfgPath, c.cfgExists, c.cfgErr = config.Load(path)
		c.loaded = true
	}
	return c.cfg, c.cfgErr
}

func (c *commandContext) configPath() string {
	return c.cfgPath
}

func (c *commandContext) configExists() bool {
	return c.cfgExists
}
