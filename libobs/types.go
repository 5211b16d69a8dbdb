//go:build !ios && !android && (amd64 || arm64)

// Package libobs is the raw surface of the libobs capture and encoding
// engine: opaque object pointers, the C structs the engine reads and writes,
// its constants, and the Engine interface through which every native call is
// made.
//
// Nothing in this package is safe for concurrent use. Apart from the
// functions documented as thread-safe, Engine methods must be called from
// the thread that called Startup. The obsgo package enforces that; use this
// package directly only from code already running on that thread.
package libobs

import "unsafe"

// Opaque engine object pointers. Each is a distinct type so a Source can
// never be passed where a Scene is expected.
type (
	Source        unsafe.Pointer // obs_source_t*
	Scene         unsafe.Pointer // obs_scene_t*
	SceneItem     unsafe.Pointer // obs_sceneitem_t*
	Output        unsafe.Pointer // obs_output_t*
	Encoder       unsafe.Pointer // obs_encoder_t*
	Display       unsafe.Pointer // obs_display_t*
	Data          unsafe.Pointer // obs_data_t*
	SignalHandler unsafe.Pointer // signal_handler_t*
	ProcHandler   unsafe.Pointer // proc_handler_t*
	Calldata      unsafe.Pointer // calldata_t*
)

// MaxChannels is the number of output channels scenes can be assigned to.
const MaxChannels = 64

// MaxAudioMixes is the number of audio tracks an output can carry.
const MaxAudioMixes = 6

// Vec2 mirrors struct vec2.
type Vec2 struct {
	X, Y float32
}

// VideoInfo describes the video pipeline passed to obs_reset_video.
type VideoInfo struct {
	GraphicsModule string

	FPSNum uint32
	FPSDen uint32

	BaseWidth    uint32
	BaseHeight   uint32
	OutputWidth  uint32
	OutputHeight uint32
	OutputFormat VideoFormat

	Adapter       uint32
	GPUConversion bool

	Colorspace Colorspace
	Range      VideoRange
	ScaleType  ScaleType
}

// AudioInfo mirrors struct obs_audio_info.
type AudioInfo struct {
	SamplesPerSec uint32
	Speakers      SpeakerLayout
}

// TransformInfo mirrors struct obs_transform_info field for field, so it
// can be handed to the engine by pointer.
type TransformInfo struct {
	Pos             Vec2
	Rot             float32
	Scale           Vec2
	Alignment       uint32
	BoundsType      BoundsType
	BoundsAlignment uint32
	Bounds          Vec2
	CropToBounds    bool
}

// Window identifies the native surface a display renders into. Windows and
// macOS use Handle (HWND or NSView*); X11 and Wayland use ID and Display.
type Window struct {
	Handle  unsafe.Pointer
	ID      uint32
	Display unsafe.Pointer
}

// DisplayInfo describes a display to create, mirroring struct gs_init_data.
type DisplayInfo struct {
	Window      Window
	Width       uint32
	Height      uint32
	Backbuffers uint32
	Format      ColorFormat
	ZSFormat    ZStencilFormat
	Adapter     uint32
}

// Alignment flags for TransformInfo.Alignment and BoundsAlignment.
const (
	AlignCenter uint32 = 0
	AlignLeft   uint32 = 1 << 0
	AlignRight  uint32 = 1 << 1
	AlignTop    uint32 = 1 << 2
	AlignBottom uint32 = 1 << 3
)
