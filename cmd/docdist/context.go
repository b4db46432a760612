package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"docdist/internal/config"
	"docdist/internal/docdist"
	"docdist/internal/history"
	"docdist/internal/logging"
	"docdist/internal/source"
	"docdist/internal/textutil"
)

type commandContext struct {
	configFlag   *string
	policyFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, policyFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		policyFlag:   policyFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if value := flagValue(c.policyFlag); value != "" {
		policy, err := textutil.ParsePolicy(value)
		if err != nil {
			return fmt.Errorf("--policy: %w", err)
		}
		cfg.Tokenizer.Policy = policy.String()
	}
	if value := flagValue(c.logLevelFlag); value != "" {
		cfg.Logging.Level = strings.ToLower(value)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ensureLogger builds the logger once; w receives console or JSON output.
func (c *commandContext) ensureLogger(w io.Writer) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, w)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) pipeline(cmd *cobra.Command) (*docdist.Pipeline, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return docdist.New(textutil.NewTokenizer(cfg.TokenPolicy()), logger), cfg, nil
}

// withHistory runs fn against the history store. fn is skipped when history
// is disabled.
func (c *commandContext) withHistory(ctx context.Context, fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.OpenConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// recordComparison stores the outcome; failures to record are logged, not returned.
func (c *commandContext) recordComparison(cmd *cobra.Command, result docdist.Result, cmpErr error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return
	}
	ctx := logging.WithRunID(cmd.Context(), result.RunID)
	err = c.withHistory(ctx, func(store *history.Store) error {
		_, insertErr := store.Insert(ctx, history.NewRecord(result, cfg.Tokenizer.Policy, cmpErr))
		return insertErr
	})
	if err != nil {
		if logger, logErr := c.ensureLogger(cmd.ErrOrStderr()); logErr == nil {
			logging.WarnWithContext(ctx, logging.NewComponentLogger(logger, "history"),
				"record comparison failed", "history_write_failed", logging.Error(err))
		}
	}
}

// documentArgs wraps base with a check that stdin is named at most once;
// a second read of stdin would always be empty.
func documentArgs(base cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := base(cmd, args); err != nil {
			return err
		}
		seen := false
		for _, arg := range args {
			if arg != source.StdinName {
				continue
			}
			if seen {
				return fmt.Errorf("%q (stdin) may be given only once", source.StdinName)
			}
			seen = true
		}
		return nil
	}
}

func readDocuments(paths []string) ([]docdist.Document, error) {
	docs := make([]docdist.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := source.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
