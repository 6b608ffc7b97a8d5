package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"romdat/internal/config"
	"romdat/internal/logging"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	runOnce sync.Once
	run     *logging.Run
	runErr  error

	lock *flock.Flock
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// logger returns the run logger, creating the run log and pruning old ones
// on first use.
func (c *commandContext) logger() (*logging.Run, error) {
	c.runOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.runErr = err
			return
		}
		run, err := logging.NewFromConfig(cfg, uuid.NewString())
		if err != nil {
			c.runErr = fmt.Errorf("init logger: %w", err)
			return
		}
		logging.PruneRunLogs(run.Logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, run.LogPath)
		c.run = run
	})
	return c.run, c.runErr
}

// acquireLock takes the library lock so two runs never rearrange the same
// folders at once.
func (c *commandContext) acquireLock() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if c.lock != nil {
		return nil
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another romdat run holds %s", cfg.LockPath())
	}
	c.lock = lock
	return nil
}

func (c *commandContext) releaseLock() {
	if c.lock != nil {
		_ = c.lock.Unlock()
		c.lock = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

var errNoConsole = errors.New("--console is required")

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
