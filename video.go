//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// resetVideo applies vi on the affinity thread. The graphics module cannot
// change once the pipeline has been initialized.
func (c *Context) resetVideo(e libobs.Engine, vi VideoInfo) error {
	const op = "reset_video"

	c.mu.Lock()
	current := c.graphicsModule
	c.mu.Unlock()
	if current != "" && vi.GraphicsModule != current {
		return &Error{
			Kind:   KindResetVideoFailureGraphicsModule,
			Op:     op,
			Detail: "graphics module is " + current + ", cannot switch to " + vi.GraphicsModule,
		}
	}

	native := vi.native()
	if status := e.ResetVideo(&native); status != libobs.VideoSuccess {
		return &Error{Kind: KindResetVideoFailure, Op: op, Detail: status.String(), Status: int(status)}
	}

	c.mu.Lock()
	c.graphicsModule = vi.GraphicsModule
	c.info.Video = vi
	c.mu.Unlock()
	c.log.Debug("video reset",
		zap.String("graphics_module", vi.GraphicsModule),
		zap.Uint32("base_width", vi.BaseWidth),
		zap.Uint32("base_height", vi.BaseHeight),
		zap.Uint32("fps_num", vi.FPSNum),
		zap.Uint32("fps_den", vi.FPSDen))
	return nil
}

// ResetVideo reconfigures the video pipeline. It may be called any number of
// times, but fails with KindResetVideoFailureGraphicsModule if vi names a
// different graphics module than the one the engine started with.
func (c *Context) ResetVideo(vi VideoInfo) error {
	if err := c.ensureOpen("reset_video"); err != nil {
		return err
	}
	return run(c, "reset_video", func(_ affinity.Token, e libobs.Engine) error {
		return c.resetVideo(e, vi)
	})
}

// VideoInfo returns the active video configuration as reported by the engine.
func (c *Context) VideoInfo() (VideoInfo, error) {
	return call(c, "video_info", func(_ affinity.Token, e libobs.Engine) (VideoInfo, error) {
		vi, ok := e.GetVideoInfo()
		if !ok {
			return VideoInfo{}, newError(KindInvalidOperation, "video_info", "video is not initialized")
		}
		return videoInfoFromNative(vi), nil
	})
}

func enumerate(enum func(int) (string, bool)) []string {
	var out []string
	for i := 0; ; i++ {
		id, ok := enum(i)
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

// EncoderTypes returns the ids of every registered encoder type.
func (c *Context) EncoderTypes() ([]string, error) {
	return call(c, "encoder_types", func(_ affinity.Token, e libobs.Engine) ([]string, error) {
		return enumerate(e.EnumEncoderTypes), nil
	})
}

// SourceTypes returns the ids of every registered source type.
func (c *Context) SourceTypes() ([]string, error) {
	return call(c, "source_types", func(_ affinity.Token, e libobs.Engine) ([]string, error) {
		return enumerate(e.EnumSourceTypes), nil
	})
}

// OutputTypes returns the ids of every registered output type.
func (c *Context) OutputTypes() ([]string, error) {
	return call(c, "output_types", func(_ affinity.Token, e libobs.Engine) ([]string, error) {
		return enumerate(e.EnumOutputTypes), nil
	})
}
