//go:build !ios && !android && (amd64 || arm64)

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/obsgo/bootstrap"
	"github.com/obinnaokechukwu/obsgo/internal/shim"
)

// VersionResult is the output of the version command.
type VersionResult struct {
	Installed   bool   `json:"installed"`
	Version     string `json:"version,omitempty"`
	Target      string `json:"target,omitempty"`
	NeedsUpdate bool   `json:"needs_update"`
	Shim        string `json:"shim"`
}

// NewVersionCommand reports the installed libobs version and, with --target,
// whether it needs replacing.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the installed libobs version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := VersionResult{Target: target}
			v, ok, err := bootstrap.InstalledVersion(rootOpts.Library)
			if err != nil {
				return WrapExitError(ExitFailure, "probe libobs", err)
			}
			res.Installed, res.Version = ok, v
			if ok {
				_ = shim.Load()
			}
			res.Shim = shim.Status()

			if target != "" {
				want, err := bootstrap.ParseVersion(target)
				if err != nil {
					return WrapExitError(ExitCommandError, "parse --target", err)
				}
				res.NeedsUpdate = true
				if ok {
					if res.NeedsUpdate, err = bootstrap.NeedsUpdate(v, want); err != nil {
						return WrapExitError(ExitFailure, "compare versions", err)
					}
				}
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(res, func(w io.Writer) {
				if !res.Installed {
					fmt.Fprintln(w, "libobs: not installed")
				} else {
					fmt.Fprintf(w, "libobs: %s\n", res.Version)
				}
				fmt.Fprintf(w, "shim: %s\n", res.Shim)
				if res.Target != "" {
					fmt.Fprintf(w, "target: %s (update needed: %t)\n", res.Target, res.NeedsUpdate)
				}
			})
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "version the installation should satisfy")
	return cmd
}
