//go:build !ios && !android && (amd64 || arm64)

// Package cli implements the obsprobe command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/obinnaokechukwu/obsgo"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string
	Library string
	LogDir  string

	// engine replaces the loaded libobs when set.
	engine libobs.Engine
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for obsprobe.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obsprobe",
		Short: "Probe a libobs installation",
		Long:  "Inspect the installed libobs and run short capture sessions through obsgo.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "startup configuration file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Library, "library", "", "libobs file or directory")
	cmd.PersistentFlags().StringVar(&opts.LogDir, "log-dir", "", "also write logs to a file in this directory")

	cmd.AddCommand(NewVersionCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewTypesCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// startupInfo loads the configuration named by --config, or the defaults,
// and applies --library over it.
func (o *RootOptions) startupInfo() (*obsgo.StartupInfo, error) {
	info := obsgo.DefaultStartupInfo()
	if o.Config != "" {
		var err error
		if info, err = obsgo.LoadStartupInfo(o.Config); err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
	}
	if o.Library != "" {
		info.LibraryPath = o.Library
	}
	return info, nil
}

// logger builds the logger commands hand to obsgo. Without --verbose only
// warnings and errors are written.
func (o *RootOptions) logger() (*zap.Logger, error) {
	if o.LogDir != "" {
		l, _, err := obsgo.NewFileLogger(o.LogDir)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "open log file", err)
		}
		return l, nil
	}
	cfg := zap.NewDevelopmentConfig()
	if !o.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// start starts an engine with the global flags applied.
func (o *RootOptions) start(log *zap.Logger) (*obsgo.Context, error) {
	info, err := o.startupInfo()
	if err != nil {
		return nil, err
	}
	opts := []obsgo.StartOption{obsgo.WithLogger(log)}
	if o.engine != nil {
		opts = append(opts, obsgo.WithEngine(o.engine))
	}
	ctx, err := obsgo.Start(info, opts...)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "start libobs", err)
	}
	return ctx, nil
}
