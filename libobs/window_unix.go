//go:build !ios && !android && (amd64 || arm64) && !windows && !darwin

package libobs

import "unsafe"

// cInitData mirrors struct gs_init_data where gs_window is an X11 or
// Wayland window id plus its display connection.
type cInitData struct {
	windowID    uint32
	display     unsafe.Pointer
	cx          uint32
	cy          uint32
	backbuffers uint32
	format      int32
	zsformat    int32
	adapter     uint32
}

func newInitData(info *DisplayInfo) cInitData {
	return cInitData{
		windowID:    info.Window.ID,
		display:     info.Window.Display,
		cx:          info.Width,
		cy:          info.Height,
		backbuffers: info.Backbuffers,
		format:      int32(info.Format),
		zsformat:    int32(info.ZSFormat),
		adapter:     info.Adapter,
	}
}
