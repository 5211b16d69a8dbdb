//go:build !ios && !android && (amd64 || arm64)

package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	downloads []float32
	extracts  []float32
	failAt    float32
}

func (h *recordingHandler) HandleDownloading(f float32, _ string) error {
	h.downloads = append(h.downloads, f)
	if h.failAt > 0 && f >= h.failAt {
		return errors.New("user cancelled")
	}
	return nil
}

func (h *recordingHandler) HandleExtraction(f float32, _ string) error {
	h.extracts = append(h.extracts, f)
	return nil
}

func feed(events ...Event) <-chan Event {
	ch := make(chan Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestConsumeRoutesPhasesAndReturnsPath(t *testing.T) {
	h := &recordingHandler{}
	path, err := Consume(context.Background(), feed(
		Progress{Phase: PhaseDownload, Fraction: 0.5},
		Progress{Phase: PhaseDownload, Fraction: 1},
		Progress{Phase: PhaseExtract, Fraction: 1},
		Done{Path: "/opt/obs"},
	), h)
	require.NoError(t, err)
	assert.Equal(t, "/opt/obs", path)
	assert.Equal(t, []float32{0.5, 1}, h.downloads)
	assert.Equal(t, []float32{1}, h.extracts)
}

func TestConsumeAbortsOnHandlerError(t *testing.T) {
	h := &recordingHandler{failAt: 0.5}
	_, err := Consume(context.Background(), feed(
		Progress{Phase: PhaseDownload, Fraction: 0.5},
		Done{Path: "/opt/obs"},
	), h)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestConsumeReportsFailure(t *testing.T) {
	cause := errors.New("hash mismatch")
	_, err := Consume(context.Background(), feed(Failed{Phase: PhaseDownload, Err: cause}), &recordingHandler{})
	assert.ErrorIs(t, err, cause)
}

func TestConsumeIncompleteStream(t *testing.T) {
	_, err := Consume(context.Background(), feed(Progress{Phase: PhaseExtract, Fraction: 0.1}), &recordingHandler{})
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestConsumeHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Consume(ctx, make(chan Event), &recordingHandler{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLogHandlerThrottles(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewLogHandler(zap.New(core))

	for _, f := range []float32{0.01, 0.02, 0.06, 0.07, 0.5, 0.52, 1} {
		require.NoError(t, h.HandleDownloading(f, "obs.zip"))
	}
	// 0.06, 0.5 and the final 1.
	assert.Equal(t, 3, logs.Len())

	require.NoError(t, h.HandleExtraction(0.1, "bin"))
	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, "extract", logs.All()[3].ContextMap()["phase"])
}

func TestNeedsUpdate(t *testing.T) {
	target := semver.Version{Major: 31, Minor: 1, Patch: 2}
	cases := []struct {
		installed string
		want      bool
	}{
		{"31.1.2", false},
		{"31.1.3", false},
		{"31.1.1", true},
		{"31.0.9", true},
		{"32.1.2", true},
		{"30.1.2", true},
	}
	for _, tc := range cases {
		got, err := NeedsUpdate(tc.installed, target)
		require.NoError(t, err, tc.installed)
		assert.Equal(t, tc.want, got, tc.installed)
	}
}

func TestNeedsUpdateRejectsMalformedVersions(t *testing.T) {
	for _, v := range []string{"", "31", "31.1", "31.1.x", "31.1.2.4", "-1.0.0"} {
		_, err := NeedsUpdate(v, semver.Version{Major: 31})
		assert.ErrorIs(t, err, ErrVersion, v)
	}
}

func TestInstalledVersionMissingLibrary(t *testing.T) {
	v, ok, err := InstalledVersion(filepath.Join(t.TempDir(), "libobs.so.0"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestInstalledVersionOfInstalledLibobs(t *testing.T) {
	v, ok, err := InstalledVersion("")
	if err != nil || !ok {
		t.Skip("libobs not installed")
	}
	_, err = ParseVersion(v)
	assert.NoError(t, err)
}
