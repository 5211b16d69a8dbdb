//go:build !ios && !android && (amd64 || arm64)

package libobs

import "github.com/obinnaokechukwu/obsgo/internal/handles"

// SignalReceiver receives the calldata of a connected signal. It runs on
// whichever engine thread emitted the signal and must not block.
type SignalReceiver interface {
	ReceiveSignal(cd Calldata)
}

// RegisterReceiver returns the opaque data to hand to SignalHandlerConnect
// for r.
func RegisterReceiver(r SignalReceiver) uintptr {
	return handles.Register(r)
}

// UnregisterReceiver forgets a receiver registered with RegisterReceiver.
// Signals already in flight for data are dropped.
func UnregisterReceiver(data uintptr) {
	handles.Unregister(data)
}

// DeliverSignal routes cd to the receiver registered under data. It reports
// whether a receiver was found.
func DeliverSignal(data uintptr, cd Calldata) bool {
	r, ok := handles.LookupAs[SignalReceiver](data)
	if !ok {
		return false
	}
	r.ReceiveSignal(cd)
	return true
}
