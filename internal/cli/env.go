package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"toolchainctl/internal/catalog"
	"toolchainctl/internal/config"
	"toolchainctl/internal/logx"
	"toolchainctl/internal/paths"
	"toolchainctl/internal/toolchain"
)

// appEnv bundles what every command needs once flags are parsed.
type appEnv struct {
	cfg      config.Config
	cfgPath  string
	paths    paths.AppPaths
	logger   *log.Logger
	closer   io.Closer
	registry *toolchain.Registry
}

func (e *appEnv) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func loadConfig() (config.Config, string, error) {
	path := configFile
	if path != "" {
		exists, err := paths.FileExists(path)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("stat config: %w", err)
		}
		if !exists {
			return config.Config{}, "", fmt.Errorf("config file not found: %s", path)
		}
	} else {
		var err error
		path, err = paths.DefaultConfigFile()
		if err != nil {
			return config.Config{}, "", err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, path, nil
}

func newAppEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return nil, err
	}

	validations := cfg.Validate()
	if errs := config.Errors(validations); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, v := range errs {
			msgs = append(msgs, v.Message)
		}
		return nil, errors.New("config validation failed: " + strings.Join(msgs, "; "))
	}

	pp, err := paths.Resolve(rootDir, cfg.Root)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logx.New(logx.Options{
		Level:  cfg.LogLevel,
		Dir:    cfg.LogDir,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	for _, v := range validations {
		logger.Warn(v.Message, "config", cfgPath)
	}

	var cat toolchain.Catalog
	if !cfg.Catalog.Disabled {
		cat = catalog.NewLazy(cfg.Catalog.File)
	}

	logger.Debug("environment ready", "config", cfgPath, "root", pp.ToolchainDir)

	return &appEnv{
		cfg:      cfg,
		cfgPath:  cfgPath,
		paths:    pp,
		logger:   logger,
		closer:   closer,
		registry: toolchain.NewRegistry(pp.ToolchainDir, cat, logger),
	}, nil
}
