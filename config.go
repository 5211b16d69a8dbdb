//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/obinnaokechukwu/obsgo/internal/platform"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// Paths are the search paths registered with the engine at startup.
type Paths struct {
	// LibobsData is the directory holding libobs' own data (effects, locale).
	LibobsData string `yaml:"libobs_data"`
	// PluginBin and PluginData are module search path templates, e.g.
	// "/usr/lib/obs-plugins/%module%" and "/usr/share/obs/obs-plugins/%module%".
	PluginBin  string `yaml:"plugin_bin"`
	PluginData string `yaml:"plugin_data"`
}

// VideoInfo describes the video pipeline.
type VideoInfo struct {
	GraphicsModule string             `yaml:"graphics_module"`
	FPSNum         uint32             `yaml:"fps_num"`
	FPSDen         uint32             `yaml:"fps_den"`
	BaseWidth      uint32             `yaml:"base_width"`
	BaseHeight     uint32             `yaml:"base_height"`
	OutputWidth    uint32             `yaml:"output_width"`
	OutputHeight   uint32             `yaml:"output_height"`
	OutputFormat   libobs.VideoFormat `yaml:"output_format"`
	Adapter        uint32             `yaml:"adapter"`
	GPUConversion  bool               `yaml:"gpu_conversion"`
	Colorspace     libobs.Colorspace  `yaml:"colorspace"`
	Range          libobs.VideoRange  `yaml:"range"`
	ScaleType      libobs.ScaleType   `yaml:"scale_type"`
}

func (v VideoInfo) native() libobs.VideoInfo {
	return libobs.VideoInfo{
		GraphicsModule: v.GraphicsModule,
		FPSNum:         v.FPSNum,
		FPSDen:         v.FPSDen,
		BaseWidth:      v.BaseWidth,
		BaseHeight:     v.BaseHeight,
		OutputWidth:    v.OutputWidth,
		OutputHeight:   v.OutputHeight,
		OutputFormat:   v.OutputFormat,
		Adapter:        v.Adapter,
		GPUConversion:  v.GPUConversion,
		Colorspace:     v.Colorspace,
		Range:          v.Range,
		ScaleType:      v.ScaleType,
	}
}

func videoInfoFromNative(v libobs.VideoInfo) VideoInfo {
	return VideoInfo{
		GraphicsModule: v.GraphicsModule,
		FPSNum:         v.FPSNum,
		FPSDen:         v.FPSDen,
		BaseWidth:      v.BaseWidth,
		BaseHeight:     v.BaseHeight,
		OutputWidth:    v.OutputWidth,
		OutputHeight:   v.OutputHeight,
		OutputFormat:   v.OutputFormat,
		Adapter:        v.Adapter,
		GPUConversion:  v.GPUConversion,
		Colorspace:     v.Colorspace,
		Range:          v.Range,
		ScaleType:      v.ScaleType,
	}
}

// AudioInfo describes the audio pipeline.
type AudioInfo struct {
	SamplesPerSec uint32               `yaml:"samples_per_sec"`
	Speakers      libobs.SpeakerLayout `yaml:"speakers"`
}

// StartupInfo configures Start.
type StartupInfo struct {
	Locale           string `yaml:"locale"`
	ModuleConfigPath string `yaml:"module_config_path"`
	// LibraryPath is a libobs file or directory. Empty searches
	// OBSGO_LIBRARY_PATH and the platform library directories.
	LibraryPath string `yaml:"library_path"`

	Paths Paths     `yaml:"paths"`
	Video VideoInfo `yaml:"video"`
	Audio AudioInfo `yaml:"audio"`

	// DisabledModules are never loaded, in addition to the modules that
	// conflict with an embedded engine.
	DisabledModules []string `yaml:"disabled_modules"`

	// NonBlockingDrops releases native objects from a background task
	// instead of waiting on the affinity thread. Release order is then no
	// longer deterministic.
	NonBlockingDrops bool `yaml:"non_blocking_drops"`

	// SignalBuffer is the channel capacity of each signal subscription.
	SignalBuffer int `yaml:"signal_buffer"`
}

// DefaultSignalBuffer is the subscription capacity used when
// StartupInfo.SignalBuffer is zero.
const DefaultSignalBuffer = 32

// DefaultStartupInfo returns a 1920x1080 at 30 fps, 48 kHz stereo setup with the
// platform's default graphics module.
func DefaultStartupInfo() *StartupInfo {
	return &StartupInfo{
		Locale: "en-US",
		Video: VideoInfo{
			GraphicsModule: platform.DefaultGraphicsModule(),
			FPSNum:         30,
			FPSDen:         1,
			BaseWidth:      1920,
			BaseHeight:     1080,
			OutputWidth:    1920,
			OutputHeight:   1080,
			OutputFormat:   libobs.VideoFormatNV12,
			GPUConversion:  true,
			Colorspace:     libobs.ColorspaceDefault,
			Range:          libobs.RangeDefault,
			ScaleType:      libobs.ScaleBicubic,
		},
		Audio: AudioInfo{
			SamplesPerSec: 48000,
			Speakers:      libobs.SpeakersStereo,
		},
		SignalBuffer: DefaultSignalBuffer,
	}
}

// LoadStartupInfo reads a YAML file over DefaultStartupInfo.
func LoadStartupInfo(path string) (*StartupInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(KindConfig, "config.load", err)
	}
	info := DefaultStartupInfo()
	if err := yaml.Unmarshal(raw, info); err != nil {
		return nil, wrapError(KindConfig, "config.load", fmt.Errorf("%s: %w", path, err))
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// Validate checks the settings Start depends on.
func (s *StartupInfo) Validate() error {
	const op = "config.validate"
	switch {
	case s.Video.GraphicsModule == "":
		return newError(KindConfig, op, "video.graphics_module is empty")
	case s.Video.FPSNum == 0 || s.Video.FPSDen == 0:
		return newError(KindConfig, op, "video fps must be non-zero")
	case s.Video.BaseWidth == 0 || s.Video.BaseHeight == 0:
		return newError(KindConfig, op, "video base resolution must be non-zero")
	case s.Video.OutputWidth == 0 || s.Video.OutputHeight == 0:
		return newError(KindConfig, op, "video output resolution must be non-zero")
	case s.Audio.SamplesPerSec == 0:
		return newError(KindConfig, op, "audio.samples_per_sec must be non-zero")
	case s.SignalBuffer < 0:
		return newError(KindConfig, op, "signal_buffer must not be negative")
	case (s.Paths.PluginBin == "") != (s.Paths.PluginData == ""):
		return newError(KindConfig, op, "paths.plugin_bin and paths.plugin_data must be set together")
	}
	return nil
}

func (s *StartupInfo) signalBuffer() int {
	if s.SignalBuffer <= 0 {
		return DefaultSignalBuffer
	}
	return s.SignalBuffer
}
