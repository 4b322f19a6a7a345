package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/conio/internal/config"
	"github.com/dshills/conio/internal/console"
	"github.com/dshills/conio/internal/driver"
	"github.com/dshills/conio/internal/logging"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	driver     string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:               "conio",
		Short:             "Inspect terminal input and escape-sequence replies",
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML configuration file")
	flags.StringVar(&opts.driver, "driver", "", "console driver (auto, vt, legacy, fake)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(
		newKeysCmd(opts),
		newQueryCmd(opts),
		newSizeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig layers the config file, CONIO_* variables and flags.
func (o *rootOptions) loadConfig(lookup func(string) (string, bool)) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if o.driver != "" {
		cfg.Driver.Kind = o.driver
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Logging.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is a configured driver, logger and loop.
type session struct {
	cfg    *config.Config
	log    *logging.Logger
	closer io.Closer
	drv    driver.Driver
}

func (o *rootOptions) newSession() (*session, error) {
	cfg, err := o.loadConfig(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.Open(cfg.Logging.File, cfg.LogLevel(), "conio")
	if err != nil {
		return nil, err
	}
	drv, err := driver.New(cfg.Driver.Kind, driver.Options{Mouse: cfg.Driver.Mouse})
	if err != nil {
		closer.Close()
		return nil, err
	}
	log.Info("using %s driver", drv.Name())
	return &session{cfg: cfg, log: log, closer: closer, drv: drv}, nil
}

func (s *session) newLoop(opts ...console.Option) *console.Loop {
	base := []console.Option{
		console.WithLogger(s.log),
		console.WithClickWindow(s.cfg.Input.ClickWindow.Std()),
		console.WithClickTolerance(s.cfg.Input.ClickTolerance),
		console.WithEscapeTimeout(s.cfg.Input.EscapeTimeout.Std()),
		console.WithRequestTimeout(s.cfg.Requests.Timeout.Std()),
	}
	return console.New(s.drv, append(base, opts...)...)
}

func (s *session) Close() error {
	return s.closer.Close()
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
