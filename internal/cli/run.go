//go:build !ios && !android && (amd64 || arm64)

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo"
	"github.com/obinnaokechukwu/obsgo/sources"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	Source   string
	Name     string
	Settings map[string]string
	Channel  uint32
	Duration time.Duration
	Replay   bool
	// ReplaySeconds is how much history the replay buffer keeps.
	ReplaySeconds int64
	VideoEncoder  string
	AudioEncoder  string
}

// RunResult is the output of the run command.
type RunResult struct {
	Version string `json:"version"`
	Scene   string `json:"scene"`
	Source  string `json:"source"`
	Channel uint32 `json:"channel"`
	Fitted  bool   `json:"fitted"`
	Replay  string `json:"replay,omitempty"`
}

// NewRunCommand shows one catalogue source on an output channel for a while,
// optionally saving what a replay buffer captured meanwhile.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show a source on an output channel",
		Long: "Start libobs, put one source in a scene fitted to the screen, and show the scene " +
			"on an output channel. With --replay, a replay buffer records meanwhile and is saved at the end.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", sources.Color.ID, "source kind id from the sources catalogue")
	cmd.Flags().StringVar(&opts.Name, "name", "", "source name (generated when empty)")
	cmd.Flags().StringToStringVar(&opts.Settings, "set", nil, "source setting as field=value (repeatable)")
	cmd.Flags().Uint32Var(&opts.Channel, "channel", 0, "output channel to show the scene on")
	cmd.Flags().DurationVarP(&opts.Duration, "duration", "d", 5*time.Second, "how long to keep the scene on screen")
	cmd.Flags().BoolVar(&opts.Replay, "replay", false, "record into a replay buffer and save it before exiting")
	cmd.Flags().Int64Var(&opts.ReplaySeconds, "replay-seconds", 30, "replay buffer length in seconds")
	cmd.Flags().StringVar(&opts.VideoEncoder, "video-encoder", "obs_x264", "video encoder id for --replay")
	cmd.Flags().StringVar(&opts.AudioEncoder, "audio-encoder", "ffmpeg_aac", "audio encoder id for --replay")

	return cmd
}

func runSession(cmd *cobra.Command, rootOpts *RootOptions, opts *RunOptions) (err error) {
	kind, ok := sources.Lookup(opts.Source)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown source kind %q", opts.Source))
	}
	b := sources.New(kind, opts.Name)
	for field, text := range opts.Settings {
		b.SetText(field, text)
	}
	if err := b.Err(); err != nil {
		return WrapExitError(ExitCommandError, "source settings", err)
	}

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

	res := RunResult{Channel: opts.Channel}
	if res.Version, err = ctx.Version(); err != nil {
		return WrapExitError(ExitFailure, "version", err)
	}

	scene, err := ctx.NewScene("obsprobe")
	if err != nil {
		return WrapExitError(ExitFailure, "create scene", err)
	}
	defer func() { _ = scene.Release() }()
	res.Scene = scene.Name()

	src, err := ctx.BuildSource(b)
	if err != nil {
		return WrapExitError(ExitFailure, "create source", err)
	}
	defer func() { _ = src.Release() }()
	res.Source = src.Name()

	if err := scene.AddExistingSource(src); err != nil {
		return WrapExitError(ExitFailure, "add source", err)
	}
	if res.Fitted, err = scene.FitSourceToScreen(src); err != nil {
		return WrapExitError(ExitFailure, "fit source", err)
	}
	if err := scene.SetToChannel(opts.Channel); err != nil {
		return WrapExitError(ExitFailure, "set channel", err)
	}
	log.Info("scene on screen",
		zap.String("scene", res.Scene),
		zap.String("source", res.Source),
		zap.Uint32("channel", opts.Channel))

	if opts.Replay {
		if res.Replay, err = recordReplay(cmd.Context(), ctx, opts); err != nil {
			return err
		}
	} else if err := wait(cmd.Context(), opts.Duration); err != nil {
		return WrapExitError(ExitFailure, "interrupted", err)
	}

	if err := scene.RemoveFromChannel(opts.Channel); err != nil {
		return WrapExitError(ExitFailure, "clear channel", err)
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(res, func(w io.Writer) {
		fmt.Fprintf(w, "libobs %s: showed %s in scene %s on channel %d (fitted: %t)\n",
			res.Version, res.Source, res.Scene, res.Channel, res.Fitted)
		if res.Replay != "" {
			fmt.Fprintf(w, "replay saved to %s\n", res.Replay)
		}
	})
}

// recordReplay runs a replay buffer for opts.Duration and saves it.
func recordReplay(cctx context.Context, ctx *obsgo.Context, opts *RunOptions) (path string, err error) {
	venc, err := ctx.NewVideoEncoder(obsgo.EncoderInfo{ID: opts.VideoEncoder, Name: "obsprobe-video"})
	if err != nil {
		return "", WrapExitError(ExitFailure, "create video encoder", err)
	}
	defer func() { _ = venc.Release() }()
	aenc, err := ctx.NewAudioEncoder(obsgo.EncoderInfo{ID: opts.AudioEncoder, Name: "obsprobe-audio"})
	if err != nil {
		return "", WrapExitError(ExitFailure, "create audio encoder", err)
	}
	defer func() { _ = aenc.Release() }()

	settings, err := ctx.NewData()
	if err != nil {
		return "", WrapExitError(ExitFailure, "replay settings", err)
	}
	defer func() { _ = settings.Release() }()
	if err := settings.BulkUpdate().
		SetInt("max_time_sec", opts.ReplaySeconds).
		SetInt("max_size_mb", 512).
		Apply(); err != nil {
		return "", WrapExitError(ExitFailure, "replay settings", err)
	}

	out, err := ctx.NewOutput(obsgo.OutputInfo{ID: obsgo.ReplayBufferID, Name: "obsprobe-replay", Settings: settings})
	if err != nil {
		return "", WrapExitError(ExitFailure, "create replay buffer", err)
	}
	defer func() { _ = out.Release() }()

	if err := out.SetVideoEncoder(venc); err != nil {
		return "", WrapExitError(ExitFailure, "attach video encoder", err)
	}
	if err := out.SetAudioEncoder(aenc, 0); err != nil {
		return "", WrapExitError(ExitFailure, "attach audio encoder", err)
	}

	if err := out.Start(); err != nil {
		return "", WrapExitError(ExitFailure, "start replay buffer", err)
	}
	defer func() {
		if serr := out.Stop(); serr != nil {
			err = multierr.Append(err, WrapExitError(ExitFailure, "stop replay buffer", serr))
		}
	}()

	if err := wait(cctx, opts.Duration); err != nil {
		return "", WrapExitError(ExitFailure, "interrupted", err)
	}

	saveCtx, cancel := context.WithTimeout(cctx, obsgo.DefaultStopTimeout)
	defer cancel()
	path, err = out.SaveBuffer(saveCtx)
	if err != nil {
		return "", WrapExitError(ExitFailure, "save replay", err)
	}
	return path, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
