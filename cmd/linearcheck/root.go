package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/njchilds90/linearcheck"
	"github.com/njchilds90/linearcheck/internal/config"
	"github.com/njchilds90/linearcheck/internal/logging"
	"github.com/njchilds90/linearcheck/internal/version"
	"github.com/njchilds90/linearcheck/symbolic"
)

// errReported means the failure was already written to the output.
var errReported = errors.New("reported")

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	locale     string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "linearcheck",
		Short: "Decide whether a transformation is linear",
		Long: `linearcheck checks symbolically whether F: R^n -> R^m, written as text,
is a linear transformation. It verifies additivity F(u+v) = F(u) + F(v) and
homogeneity F(k·u) = k·F(u) and shows every intermediate vector.`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("linearcheck version {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (yaml, toml or json)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flags.locale, "locale", "", "Message language: id (default) or en")

	cmd.AddCommand(
		newCheckCmd(&flags),
		newServeCmd(&flags),
		newExamplesCmd(&flags),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if pf.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if pf.Changed("locale") {
		cfg.Verifier.Language = flags.locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
}

func newVerifier(cfg *config.Config, logger *slog.Logger) (*linearcheck.Verifier, error) {
	tag, err := linearcheck.ParseLanguage(cfg.Verifier.Language)
	if err != nil {
		return nil, err
	}
	return linearcheck.New(
		linearcheck.WithLogger(logger),
		linearcheck.WithLanguage(tag),
		linearcheck.WithLimits(symbolic.Limits{
			MaxExponent: cfg.Verifier.MaxExponent,
			MaxTerms:    cfg.Verifier.MaxTerms,
		}),
		linearcheck.WithMaxInputLength(cfg.Verifier.MaxInputLength),
	), nil
}

// setup is the common prologue of every command that verifies.
func setup(cmd *cobra.Command, flags *globalFlags) (*config.Config, *slog.Logger, *linearcheck.Verifier, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cmd, cfg)
	v, err := newVerifier(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, v, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
