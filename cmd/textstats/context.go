package main

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"harshagw/textstats/internal/config"
	"harshagw/textstats/internal/logging"
	"harshagw/textstats/internal/session"
	"harshagw/textstats/internal/store"
	"harshagw/textstats/internal/vocab"
)

// sessionAPI is the part of session.Session the commands use.
type sessionAPI interface {
	Config() *config.Config
	Files() ([]string, error)
	Analyze(ctx context.Context, file string, n int) (*session.Report, error)
	History() *store.History
	Vocabulary(file string) (*vocab.Vocabulary, error)
}

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// withSession opens a session for the duration of fn.
func (c *commandContext) withSession(fn func(sessionAPI) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := session.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close session", zap.Error(err))
		}
	}()

	return fn(s)
}
