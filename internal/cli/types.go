//go:build !ios && !android && (amd64 || arm64)

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// TypesResult is the output of the types command.
type TypesResult struct {
	Version  string   `json:"version"`
	Encoders []string `json:"encoders"`
	Sources  []string `json:"sources"`
	Outputs  []string `json:"outputs"`
}

// NewTypesCommand starts the engine and lists the encoder, source and
// output types its modules registered.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types registered by loaded modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			log, err := rootOpts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, err := rootOpts.start(log)
			if err != nil {
				return err
			}
			defer func() {
				if serr := ctx.Shutdown(); serr != nil {
					err = multierr.Append(err, WrapExitError(ExitFailure, "shutdown", serr))
				}
			}()

			var res TypesResult
			if res.Version, err = ctx.Version(); err != nil {
				return WrapExitError(ExitFailure, "version", err)
			}
			if res.Encoders, err = ctx.EncoderTypes(); err != nil {
				return WrapExitError(ExitFailure, "encoder types", err)
			}
			if res.Sources, err = ctx.SourceTypes(); err != nil {
				return WrapExitError(ExitFailure, "source types", err)
			}
			if res.Outputs, err = ctx.OutputTypes(); err != nil {
				return WrapExitError(ExitFailure, "output types", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(res, func(w io.Writer) {
				fmt.Fprintf(w, "libobs %s\n", res.Version)
				fmt.Fprintf(w, "encoders: %s\n", strings.Join(res.Encoders, ", "))
				fmt.Fprintf(w, "sources:  %s\n", strings.Join(res.Sources, ", "))
				fmt.Fprintf(w, "outputs:  %s\n", strings.Join(res.Outputs, ", "))
			})
		},
	}
}
