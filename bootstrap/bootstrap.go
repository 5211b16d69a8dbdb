//go:build !ios && !android && (amd64 || arm64)

// Package bootstrap holds what an installer of libobs needs from obsgo: the
// progress events an installer emits, their consumption with a status
// handler, and the checks deciding whether an installation is current.
//
// Downloading and unpacking releases is left to the installer.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrAborted is returned by Consume when a status handler fails.
	ErrAborted = errors.New("bootstrap: aborted by status handler")
	// ErrIncomplete is returned by Consume when the event stream ends
	// without a Done or Failed event.
	ErrIncomplete = errors.New("bootstrap: event stream ended before completion")
	// ErrVersion is returned for malformed version strings.
	ErrVersion = errors.New("bootstrap: invalid version")
	// ErrLibLoading is returned when a library cannot be probed.
	ErrLibLoading = errors.New("bootstrap: cannot load library")
)

// Phase is a stage of an installation.
type Phase string

const (
	PhaseDownload Phase = "download"
	PhaseExtract  Phase = "extract"
)

// Event is emitted by an installer. It is one of Progress, Done or Failed.
type Event interface {
	event()
}

// Progress reports how far a phase has come. Fraction is in [0, 1].
type Progress struct {
	Phase    Phase
	Fraction float32
	Message  string
}

// Done reports a finished installation and where libobs was installed.
type Done struct {
	Path string
}

// Failed reports an installation that stopped with an error.
type Failed struct {
	Phase Phase
	Err   error
}

func (Progress) event() {}
func (Done) event()     {}
func (Failed) event()   {}

// StatusHandler shows installation progress. Returning an error aborts the
// installation; nothing already written is cleaned up.
type StatusHandler interface {
	HandleDownloading(fraction float32, message string) error
	HandleExtraction(fraction float32, message string) error
}

// Consume feeds events to h until the installation is done and returns the
// install path. A Failed event, a handler error or ctx ending stop it early.
func Consume(ctx context.Context, events <-chan Event, h StatusHandler) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return "", ErrIncomplete
			}
			switch ev := ev.(type) {
			case Progress:
				var err error
				switch ev.Phase {
				case PhaseDownload:
					err = h.HandleDownloading(ev.Fraction, ev.Message)
				case PhaseExtract:
					err = h.HandleExtraction(ev.Fraction, ev.Message)
				}
				if err != nil {
					return "", fmt.Errorf("%w: %w", ErrAborted, err)
				}
			case Done:
				return ev.Path, nil
			case Failed:
				return "", fmt.Errorf("bootstrap: %s failed: %w", ev.Phase, ev.Err)
			}
		}
	}
}

// reportStep is the progress change LogHandler waits for before logging
// again.
const reportStep = 0.05

// LogHandler logs progress to a zap logger, once per five percent of each
// phase and always on completion.
type LogHandler struct {
	log *zap.Logger

	mu       sync.Mutex
	download float32
	extract  float32
}

// NewLogHandler returns a LogHandler writing to log. A nil log discards.
func NewLogHandler(log *zap.Logger) *LogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogHandler{log: log}
}

func (h *LogHandler) report(last *float32, phase Phase, fraction float32, message string) {
	h.mu.Lock()
	due := fraction-*last >= reportStep || fraction >= 1
	if due {
		*last = fraction
	}
	h.mu.Unlock()
	if due {
		h.log.Info("bootstrap progress",
			zap.String("phase", string(phase)),
			zap.Float32("percent", fraction*100),
			zap.String("message", message))
	}
}

// HandleDownloading implements StatusHandler.
func (h *LogHandler) HandleDownloading(fraction float32, message string) error {
	h.report(&h.download, PhaseDownload, fraction, message)
	return nil
}

// HandleExtraction implements StatusHandler.
func (h *LogHandler) HandleExtraction(fraction float32, message string) error {
	h.report(&h.extract, PhaseExtract, fraction, message)
	return nil
}
