//go:build !ios && !android && (amd64 || arm64) && (windows || darwin)

package libobs

import "unsafe"

// cInitData mirrors struct gs_init_data where gs_window holds a single
// handle (HWND on Windows, NSView* on macOS).
type cInitData struct {
	window      unsafe.Pointer
	cx          uint32
	cy          uint32
	backbuffers uint32
	format      int32
	zsformat    int32
	adapter     uint32
}

func newInitData(info *DisplayInfo) cInitData {
	return cInitData{
		window:      info.Window.Handle,
		cx:          info.Width,
		cy:          info.Height,
		backbuffers: info.Backbuffers,
		format:      int32(info.Format),
		zsformat:    int32(info.ZSFormat),
		adapter:     info.Adapter,
	}
}
