//go:build !ios && !android && (amd64 || arm64)

// Package platform describes how the engine is packaged on each operating
// system: shared library names and the default graphics backend.
package platform

import (
	"fmt"
	"runtime"
)

func libraryAffixes(goos string) (prefix, ext string) {
	switch goos {
	case "darwin":
		return "lib", ".dylib"
	case "windows":
		return "", ".dll"
	default:
		return "lib", ".so"
	}
}

// formatLibraryName returns the file name of a shared library on goos. A
// negative version yields the unversioned name.
func formatLibraryName(goos, name string, version int) string {
	prefix, ext := libraryAffixes(goos)
	if version < 0 {
		return prefix + name + ext
	}
	switch goos {
	case "darwin":
		return fmt.Sprintf("%s%s.%d%s", prefix, name, version, ext)
	case "windows":
		return fmt.Sprintf("%s%s-%d%s", prefix, name, version, ext)
	default:
		return fmt.Sprintf("%s%s%s.%d", prefix, name, ext, version)
	}
}

// EngineLibraryNames lists the file names libobs ships under, most specific
// first.
func EngineLibraryNames() []string {
	return engineLibraryNames(runtime.GOOS)
}

func engineLibraryNames(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"libobs.framework/Versions/A/libobs", "libobs.framework/libobs", "libobs.dylib"}
	case "windows":
		return []string{"obs.dll"}
	default:
		return []string{formatLibraryName(goos, "obs", 0), formatLibraryName(goos, "obs", -1)}
	}
}

// DefaultGraphicsModule returns the graphics backend libobs uses by default.
func DefaultGraphicsModule() string {
	return defaultGraphicsModule(runtime.GOOS)
}

func defaultGraphicsModule(goos string) string {
	if goos == "windows" {
		return "libobs-d3d11"
	}
	return "libobs-opengl"
}
