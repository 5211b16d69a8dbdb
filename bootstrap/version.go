//go:build !ios && !android && (amd64 || arm64)

package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/coreos/go-semver/semver"
	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/obsgo/internal/bindings"
)

// ParseVersion parses a strict "major.minor.patch" version.
func ParseVersion(v string) (semver.Version, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return semver.Version{}, fmt.Errorf("%w: %q", ErrVersion, v)
	}
	var nums [3]int64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return semver.Version{}, fmt.Errorf("%w: %q", ErrVersion, v)
		}
		nums[i] = int64(n)
	}
	return semver.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// NeedsUpdate reports whether an installation of version installed must be
// replaced to serve target: when the major or minor version differs, or the
// patch level is older.
func NeedsUpdate(installed string, target semver.Version) (bool, error) {
	v, err := ParseVersion(installed)
	if err != nil {
		return false, err
	}
	return v.Major != target.Major || v.Minor != target.Minor || v.Patch < target.Patch, nil
}

// InstalledVersion loads the libobs at libPath and returns its version
// string. ok is false when there is no library at libPath or it reports no
// usable version. An empty libPath searches the usual library locations.
func InstalledVersion(libPath string) (version string, ok bool, err error) {
	if libPath == "" {
		libPath, err = bindings.FindLibrary()
		if err != nil {
			return "", false, nil
		}
	}
	if st, statErr := os.Stat(libPath); statErr != nil || st.IsDir() {
		return "", false, nil
	}

	lib, err := bindings.Open(libPath)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrLibLoading, err)
	}
	defer purego.Dlclose(lib)

	sym, err := purego.Dlsym(lib, "obs_get_version_string")
	if err != nil {
		return "", false, fmt.Errorf("%w: %s has no obs_get_version_string: %w", ErrLibLoading, libPath, err)
	}
	var getVersion func() *byte
	purego.RegisterFunc(&getVersion, sym)

	b := cBytes(getVersion())
	if len(b) == 0 || !utf8.Valid(b) {
		return "", false, nil
	}
	return string(b), true, nil
}

func cBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return append([]byte(nil), unsafe.Slice(p, n)...)
}
