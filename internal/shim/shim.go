//go:build !ios && !android && (amd64 || arm64)

// Package shim provides bindings to the obsshim helper library.
//
// libobs hands its crash and log handlers a format string and a va_list,
// which purego cannot receive. The shim is a small C library that installs
// itself as the libobs handler, formats the message with vsnprintf, and calls
// a plain Go callback with the finished string.
//
// The shim is OPTIONAL. Without it the engine works normally; crash messages
// and native log lines are simply not forwarded to Go.
//
// To build the shim for your platform:
//
//	cd shim && make
package shim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// EnvShimDir overrides every other shim search location.
const EnvShimDir = "OBSGO_SHIM_DIR"

// ErrShimNotLoaded is returned when shim functions are called but the shim is not available.
var ErrShimNotLoaded = errors.New("obsgo: shim library not loaded; crash and log forwarding unavailable")

// ErrShimNotFound is returned when the shim library cannot be found.
var ErrShimNotFound = errors.New("obsgo: shim library not found")

var (
	libShim   uintptr
	loaded    bool
	loadErr   error
	loadMu    sync.Mutex
	shimPath  string
	searchErr string

	shimSetCrashCallback func(cb uintptr)
	shimSetLogCallback   func(cb uintptr)
	shimLogLevel         func(level int32)
)

// Load attempts to load the obsshim library. libobs must already be loaded
// with RTLD_GLOBAL because the shim resolves base_set_crash_handler and
// base_set_log_handler against it.
//
// A missing shim is not an error: Load returns nil and LoadError reports why.
//
// The shim is searched for in the following locations (in order):
//  1. OBSGO_SHIM_DIR environment variable
//  2. LD_LIBRARY_PATH / DYLD_LIBRARY_PATH / PATH
//  3. Standard library paths
//  4. Executable directory
//  5. Module's shim/ directory
//  6. Current working directory
func Load() error {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return nil
	}
	if loadErr != nil {
		return nil
	}

	path, err := findShimLibrary()
	if err != nil {
		loadErr = err
		searchErr = err.Error()
		return nil
	}

	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		loadErr = fmt.Errorf("failed to load shim at %s: %w", path, err)
		searchErr = loadErr.Error()
		return nil
	}

	libShim = lib
	shimPath = path
	registerBindings()
	loaded = true
	return nil
}

// IsLoaded returns true if the shim library was successfully loaded.
func IsLoaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// LoadError returns why the shim failed to load, or nil.
func LoadError() error {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loadErr
}

// Status returns a human-readable status of the shim library.
func Status() string {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return fmt.Sprintf("loaded from %s", shimPath)
	}
	if loadErr != nil {
		return fmt.Sprintf("not loaded: %s", searchErr)
	}
	return "not loaded (Load() not called)"
}

// ExpectedLibraryName returns the expected shim library filename for the current platform.
func ExpectedLibraryName() string {
	return shimNames(runtime.GOOS)[0]
}

func shimNames(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"libobsshim.dylib", "libobsshim.1.dylib"}
	case "windows":
		return []string{"obsshim.dll", "libobsshim.dll"}
	default:
		return []string{"libobsshim.so", "libobsshim.so.1"}
	}
}

func registerBindings() {
	if libShim == 0 {
		return
	}
	registerOptionalLibFunc(&shimSetCrashCallback, libShim, "obsshim_set_crash_callback")
	registerOptionalLibFunc(&shimSetLogCallback, libShim, "obsshim_set_log_callback")
	registerOptionalLibFunc(&shimLogLevel, libShim, "obsshim_set_log_level")
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() {
		_ = recover() // purego.RegisterLibFunc panics if symbol is missing
	}()
	purego.RegisterLibFunc(fptr, handle, name)
}

// SetCrashCallback installs cb, a purego callback of shape func(msg *byte),
// as the receiver of formatted crash messages. Passing 0 restores the
// libobs default handler.
func SetCrashCallback(cb uintptr) error {
	if !IsLoaded() {
		return fmt.Errorf("%w: SetCrashCallback requires the shim", ErrShimNotLoaded)
	}
	if shimSetCrashCallback == nil {
		return errors.New("obsgo: obsshim_set_crash_callback symbol not available in shim")
	}
	shimSetCrashCallback(cb)
	return nil
}

// SetLogCallback installs cb, a purego callback of shape
// func(level int32, msg *byte), as the receiver of native log lines.
func SetLogCallback(cb uintptr) error {
	if !IsLoaded() {
		return fmt.Errorf("%w: SetLogCallback requires the shim", ErrShimNotLoaded)
	}
	if shimSetLogCallback == nil {
		return errors.New("obsgo: obsshim_set_log_callback symbol not available in shim")
	}
	shimSetLogCallback(cb)
	return nil
}

// SetLogLevel drops native log lines above level before they reach Go.
func SetLogLevel(level int32) error {
	if !IsLoaded() {
		return fmt.Errorf("%w: SetLogLevel requires the shim", ErrShimNotLoaded)
	}
	if shimLogLevel == nil {
		return errors.New("obsgo: obsshim_set_log_level symbol not available in shim")
	}
	shimLogLevel(level)
	return nil
}

func findShimLibrary() (string, error) {
	names := shimNames(runtime.GOOS)

	if dir := os.Getenv(EnvShimDir); dir != "" {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		return "", fmt.Errorf("%w: %s=%s does not contain %s", ErrShimNotFound, EnvShimDir, dir, names[0])
	}

	var searchPaths []string
	switch runtime.GOOS {
	case "darwin":
		if p := os.Getenv("DYLD_LIBRARY_PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
		searchPaths = append(searchPaths, "/opt/homebrew/lib", "/usr/local/lib")
	case "windows":
		if p := os.Getenv("PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
	default:
		if p := os.Getenv("LD_LIBRARY_PATH"); p != "" {
			searchPaths = append(searchPaths, filepath.SplitList(p)...)
		}
		searchPaths = append(searchPaths, "/usr/local/lib", "/usr/lib", "/lib")
	}

	if exe, err := os.Executable(); err == nil {
		searchPaths = append(searchPaths, filepath.Dir(exe))
	}

	// <module_root>/shim during development.
	if _, file, _, ok := runtime.Caller(0); ok {
		moduleRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
		searchPaths = append(searchPaths, filepath.Join(moduleRoot, "shim"))
	}

	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	searched := 0
	for _, name := range names {
		for _, dir := range searchPaths {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
			searched++
		}
	}

	return "", fmt.Errorf("%w: looked for %s in %d locations. Set %s or build the shim: cd shim && make",
		ErrShimNotFound, names[0], searched, EnvShimDir)
}
