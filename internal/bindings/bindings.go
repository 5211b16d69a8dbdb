//go:build !ios && !android && (amd64 || arm64)

// Package bindings locates and loads the libobs shared library with purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/obsgo/internal/platform"
)

// EnvLibraryPath names an explicit libobs file or directory to load from.
const EnvLibraryPath = "OBSGO_LIBRARY_PATH"

// ErrLibraryNotFound is returned when libobs cannot be found.
var ErrLibraryNotFound = errors.New("obsgo: libobs library not found")

var (
	libOBS   uintptr
	libPath  string
	loaded   bool
	loadOnce sync.Once
	loadErr  error
	loadMu   sync.Mutex
)

// IsLoaded reports whether libobs has been loaded.
func IsLoaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// Load finds and opens libobs. An explicit path takes precedence over
// OBSGO_LIBRARY_PATH and the platform search paths. It is safe to call more
// than once; only the first call does any work.
func Load(explicit string) (uintptr, error) {
	loadOnce.Do(func() {
		lib, path, err := doLoad(explicit)
		loadMu.Lock()
		defer loadMu.Unlock()
		if err != nil {
			loadErr = err
			return
		}
		libOBS, libPath, loaded = lib, path, true
	})
	loadMu.Lock()
	defer loadMu.Unlock()
	return libOBS, loadErr
}

func doLoad(explicit string) (uintptr, string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvLibraryPath)
	}
	if explicit != "" {
		path, err := resolveExplicit(explicit)
		if err != nil {
			return 0, "", err
		}
		lib, err := tryOpen(path)
		if err != nil {
			return 0, "", fmt.Errorf("loading libobs from %s: %w", path, err)
		}
		return lib, path, nil
	}

	for _, dir := range LibrarySearchPaths() {
		for _, name := range platform.EngineLibraryNames() {
			path := filepath.Join(dir, name)
			if lib, err := tryOpen(path); err == nil {
				return lib, path, nil
			}
		}
	}
	// Let the dynamic loader resolve the bare name.
	for _, name := range platform.EngineLibraryNames() {
		if lib, err := tryOpen(name); err == nil {
			return lib, name, nil
		}
	}
	return 0, "", fmt.Errorf("%w: set %s or install libobs", ErrLibraryNotFound, EnvLibraryPath)
}

// resolveExplicit turns a file or directory into a library file path.
func resolveExplicit(p string) (string, error) {
	st, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, p, err)
	}
	if !st.IsDir() {
		return p, nil
	}
	for _, name := range platform.EngineLibraryNames() {
		path := filepath.Join(p, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s does not contain %s", ErrLibraryNotFound, p, platform.EngineLibraryNames()[0])
}

// tryOpen opens a library with RTLD_NOW | RTLD_GLOBAL so that plugin modules
// loaded later by libobs resolve their symbols against it.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// Open opens an arbitrary library path without touching the loaded libobs
// state. It is used to probe installations.
func Open(path string) (uintptr, error) {
	lib, err := tryOpen(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	return lib, nil
}

// FindLibrary returns the path libobs would be loaded from, without opening it.
// This is useful for diagnostics.
func FindLibrary() (string, error) {
	if p := os.Getenv(EnvLibraryPath); p != "" {
		return resolveExplicit(p)
	}
	for _, dir := range LibrarySearchPaths() {
		for _, name := range platform.EngineLibraryNames() {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrLibraryNotFound
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "linux", "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/usr/lib64",
			"/app/lib", // flatpak
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/Applications/OBS.app/Contents/Frameworks",
			"/opt/homebrew/lib",
			"/usr/local/lib",
		)

	case "windows":
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		paths = append(paths,
			"C:\\Program Files\\obs-studio\\bin\\64bit",
		)
	}

	return paths
}

// Path returns the file libobs was loaded from.
func Path() string {
	loadMu.Lock()
	defer loadMu.Unlock()
	return libPath
}
