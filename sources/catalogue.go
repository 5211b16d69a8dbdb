//go:build !ios && !android && (amd64 || arm64)

package sources

// Audio capture.
var (
	PulseAudioInput = Kind{
		ID: "pulse_input_capture",
		Fields: []Field{
			{Name: "device", Key: "device_id", Type: String},
		},
	}
	PulseAudioOutput = Kind{
		ID: "pulse_output_capture",
		Fields: []Field{
			{Name: "device", Key: "device_id", Type: String},
		},
	}
	JACKOutput = Kind{
		ID: "jack_output_capture",
		Fields: []Field{
			{Name: "channels", Key: "channels", Type: Int},
			{Name: "start_jack", Key: "startjack", Type: Bool},
		},
	}
)

// Screen and window capture.
var (
	PipeWireScreen = Kind{
		ID: "pipewire-screen-capture-source",
		Fields: []Field{
			{Name: "show_cursor", Key: "ShowCursor", Type: Bool},
			{Name: "restore_token", Key: "RestoreToken", Type: String},
		},
	}
	PipeWireWindow = Kind{
		ID: "pipewire-window-capture-source",
		Fields: []Field{
			{Name: "show_cursor", Key: "ShowCursor", Type: Bool},
			{Name: "restore_token", Key: "RestoreToken", Type: String},
		},
	}
	MonitorCapture = Kind{
		ID: "monitor_capture",
		Fields: []Field{
			{Name: "monitor", Key: "monitor", Type: Int},
			{Name: "capture_cursor", Key: "capture_cursor", Type: Bool},
			{Name: "method", Key: "method", Type: Int},
		},
	}
	WindowCapture = Kind{
		ID: "window_capture",
		Fields: []Field{
			{Name: "window", Key: "window", Type: String},
			{Name: "cursor", Key: "cursor", Type: Bool},
			{Name: "priority", Key: "priority", Type: Int},
			{Name: "method", Key: "method", Type: Int},
		},
	}
	GameCapture = Kind{
		ID: "game_capture",
		Fields: []Field{
			{Name: "mode", Key: "capture_mode", Type: String},
			{Name: "window", Key: "window", Type: String},
			{Name: "capture_cursor", Key: "capture_cursor", Type: Bool},
			{Name: "allow_transparency", Key: "allow_transparency", Type: Bool},
		},
	}
)

// Devices and media.
var (
	V4L2Input = Kind{
		ID: "v4l2_input",
		Fields: []Field{
			{Name: "device", Key: "device_id", Type: String},
			{Name: "input", Key: "input", Type: Int},
			{Name: "pixel_format", Key: "pixelformat", Type: Int},
			// resolution packs width<<16 | height.
			{Name: "resolution", Key: "resolution", Type: Int},
			{Name: "framerate", Key: "framerate", Type: Int},
			{Name: "buffering", Key: "buffering", Type: Bool},
		},
	}
	Image = Kind{
		ID: "image_source",
		Fields: []Field{
			{Name: "file", Key: "file", Type: String},
			{Name: "unload", Key: "unload", Type: Bool},
			{Name: "linear_alpha", Key: "linear_alpha", Type: Bool},
		},
	}
	Color = Kind{
		ID: "color_source_v3",
		Fields: []Field{
			// color is 0xAABBGGRR.
			{Name: "color", Key: "color", Type: Int},
			{Name: "width", Key: "width", Type: Int},
			{Name: "height", Key: "height", Type: Int},
		},
	}
)

// Catalogue lists every kind above.
var Catalogue = []Kind{
	PulseAudioInput, PulseAudioOutput, JACKOutput,
	PipeWireScreen, PipeWireWindow, MonitorCapture, WindowCapture, GameCapture,
	V4L2Input, Image, Color,
}

// Lookup returns the catalogue kind with id.
func Lookup(id string) (Kind, bool) {
	for _, k := range Catalogue {
		if k.ID == id {
			return k, true
		}
	}
	return Kind{}, false
}
