//go:build !ios && !android && (amd64 || arm64)

package libobs

import (
	"fmt"
	"strings"
)

// enumNames maps enum values to the names used in text encodings.
type enumNames[T ~int32] map[T]string

func (n enumNames[T]) name(v T) string {
	if s, ok := n[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", int32(v))
}

func (n enumNames[T]) parse(kind string, text []byte) (T, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for v, name := range n {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("libobs: unknown %s %q", kind, string(text))
}

// VideoFormat mirrors enum video_format.
type VideoFormat int32

const (
	VideoFormatNone VideoFormat = iota
	VideoFormatI420
	VideoFormatNV12
	VideoFormatYVYU
	VideoFormatYUY2
	VideoFormatUYVY
	VideoFormatRGBA
	VideoFormatBGRA
	VideoFormatBGRX
	VideoFormatY800
	VideoFormatI444
	VideoFormatBGR3
	VideoFormatI422
	VideoFormatI40A
	VideoFormatI42A
	VideoFormatYUVA
	VideoFormatAYUV
	VideoFormatI010
	VideoFormatP010
)

var videoFormatNames = enumNames[VideoFormat]{
	VideoFormatNone: "none", VideoFormatI420: "i420", VideoFormatNV12: "nv12",
	VideoFormatYVYU: "yvyu", VideoFormatYUY2: "yuy2", VideoFormatUYVY: "uyvy",
	VideoFormatRGBA: "rgba", VideoFormatBGRA: "bgra", VideoFormatBGRX: "bgrx",
	VideoFormatY800: "y800", VideoFormatI444: "i444", VideoFormatBGR3: "bgr3",
	VideoFormatI422: "i422", VideoFormatI40A: "i40a", VideoFormatI42A: "i42a",
	VideoFormatYUVA: "yuva", VideoFormatAYUV: "ayuv", VideoFormatI010: "i010",
	VideoFormatP010: "p010",
}

func (f VideoFormat) String() string { return videoFormatNames.name(f) }

// MarshalText implements encoding.TextMarshaler.
func (f VideoFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *VideoFormat) UnmarshalText(text []byte) error {
	v, err := videoFormatNames.parse("video format", text)
	if err == nil {
		*f = v
	}
	return err
}

// Colorspace mirrors enum video_colorspace.
type Colorspace int32

const (
	ColorspaceDefault Colorspace = iota
	Colorspace601
	Colorspace709
	ColorspaceSRGB
	Colorspace2100PQ
	Colorspace2100HLG
)

var colorspaceNames = enumNames[Colorspace]{
	ColorspaceDefault: "default", Colorspace601: "601", Colorspace709: "709",
	ColorspaceSRGB: "srgb", Colorspace2100PQ: "2100pq", Colorspace2100HLG: "2100hlg",
}

func (c Colorspace) String() string { return colorspaceNames.name(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Colorspace) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colorspace) UnmarshalText(text []byte) error {
	v, err := colorspaceNames.parse("colorspace", text)
	if err == nil {
		*c = v
	}
	return err
}

// VideoRange mirrors enum video_range_type.
type VideoRange int32

const (
	RangeDefault VideoRange = iota
	RangePartial
	RangeFull
)

var rangeNames = enumNames[VideoRange]{
	RangeDefault: "default", RangePartial: "partial", RangeFull: "full",
}

func (r VideoRange) String() string { return rangeNames.name(r) }

// MarshalText implements encoding.TextMarshaler.
func (r VideoRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *VideoRange) UnmarshalText(text []byte) error {
	v, err := rangeNames.parse("video range", text)
	if err == nil {
		*r = v
	}
	return err
}

// ScaleType mirrors enum obs_scale_type.
type ScaleType int32

const (
	ScaleDisable ScaleType = iota
	ScalePoint
	ScaleBicubic
	ScaleBilinear
	ScaleLanczos
	ScaleArea
)

var scaleTypeNames = enumNames[ScaleType]{
	ScaleDisable: "disable", ScalePoint: "point", ScaleBicubic: "bicubic",
	ScaleBilinear: "bilinear", ScaleLanczos: "lanczos", ScaleArea: "area",
}

func (s ScaleType) String() string { return scaleTypeNames.name(s) }

// MarshalText implements encoding.TextMarshaler.
func (s ScaleType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ScaleType) UnmarshalText(text []byte) error {
	v, err := scaleTypeNames.parse("scale type", text)
	if err == nil {
		*s = v
	}
	return err
}

// SpeakerLayout mirrors enum speaker_layout.
type SpeakerLayout int32

const (
	SpeakersUnknown SpeakerLayout = 0
	SpeakersMono    SpeakerLayout = 1
	SpeakersStereo  SpeakerLayout = 2
	Speakers2Point1 SpeakerLayout = 3
	Speakers4Point0 SpeakerLayout = 4
	Speakers4Point1 SpeakerLayout = 5
	Speakers5Point1 SpeakerLayout = 6
	Speakers7Point1 SpeakerLayout = 8
)

var speakerNames = enumNames[SpeakerLayout]{
	SpeakersUnknown: "unknown", SpeakersMono: "mono", SpeakersStereo: "stereo",
	Speakers2Point1: "2.1", Speakers4Point0: "4.0", Speakers4Point1: "4.1",
	Speakers5Point1: "5.1", Speakers7Point1: "7.1",
}

func (s SpeakerLayout) String() string { return speakerNames.name(s) }

// MarshalText implements encoding.TextMarshaler.
func (s SpeakerLayout) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SpeakerLayout) UnmarshalText(text []byte) error {
	v, err := speakerNames.parse("speaker layout", text)
	if err == nil {
		*s = v
	}
	return err
}

// BoundsType mirrors enum obs_bounds_type.
type BoundsType int32

const (
	BoundsNone BoundsType = iota
	BoundsStretch
	BoundsScaleInner
	BoundsScaleOuter
	BoundsScaleToWidth
	BoundsScaleToHeight
	BoundsMaxOnly
)

var boundsNames = enumNames[BoundsType]{
	BoundsNone: "none", BoundsStretch: "stretch", BoundsScaleInner: "scale_inner",
	BoundsScaleOuter: "scale_outer", BoundsScaleToWidth: "scale_to_width",
	BoundsScaleToHeight: "scale_to_height", BoundsMaxOnly: "max_only",
}

func (b BoundsType) String() string { return boundsNames.name(b) }

// ColorFormat mirrors the display subset of enum gs_color_format.
type ColorFormat int32

const (
	ColorFormatUnknown ColorFormat = 0
	ColorFormatA8      ColorFormat = 1
	ColorFormatR8      ColorFormat = 2
	ColorFormatRGBA    ColorFormat = 3
	ColorFormatBGRX    ColorFormat = 4
	ColorFormatBGRA    ColorFormat = 5
)

// ZStencilFormat mirrors enum gs_zstencil_format.
type ZStencilFormat int32

const (
	ZSNone ZStencilFormat = iota
	ZS16
	ZS24S8
	ZS32F
	ZS32FS8X24
)

// ResetVideoStatus is the return value of obs_reset_video.
type ResetVideoStatus int32

const (
	VideoSuccess         ResetVideoStatus = 0
	VideoFail            ResetVideoStatus = -1
	VideoNotSupported    ResetVideoStatus = -2
	VideoInvalidParam    ResetVideoStatus = -3
	VideoCurrentlyActive ResetVideoStatus = -4
	VideoModuleNotFound  ResetVideoStatus = -5
)

func (s ResetVideoStatus) String() string {
	switch s {
	case VideoSuccess:
		return "success"
	case VideoFail:
		return "fail"
	case VideoNotSupported:
		return "not supported"
	case VideoInvalidParam:
		return "invalid parameter"
	case VideoCurrentlyActive:
		return "currently active"
	case VideoModuleNotFound:
		return "graphics module not found"
	default:
		return fmt.Sprintf("status %d", int32(s))
	}
}

// LogLevel mirrors the blog() levels.
type LogLevel int32

const (
	LogError   LogLevel = 100
	LogWarning LogLevel = 200
	LogInfo    LogLevel = 300
	LogDebug   LogLevel = 400
)

func (l LogLevel) String() string {
	switch {
	case l <= LogError:
		return "error"
	case l <= LogWarning:
		return "warning"
	case l <= LogInfo:
		return "info"
	default:
		return "debug"
	}
}

// Output stop codes carried by the "stop" signal.
const (
	OutputSuccess       = 0
	OutputBadPath       = -1
	OutputConnectFailed = -2
	OutputInvalidStream = -3
	OutputError         = -4
	OutputDisconnected  = -5
	OutputUnsupported   = -6
	OutputNoSpace       = -7
	OutputEncodeError   = -8
)
