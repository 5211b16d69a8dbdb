//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"slices"
	"strings"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/libobs"
)

// safeModules lists every module known to work in an embedded engine. Engines
// older than 32.0.0 only load modules registered as safe.
var safeModules = []string{
	"decklink", "image-source", "linux-alsa", "linux-capture", "linux-pipewire",
	"linux-pulseaudio", "linux-v4l2", "obs-ffmpeg", "obs-filters", "obs-nvenc",
	"obs-outputs", "obs-qsv11", "obs-transitions", "obs-vst", "obs-websocket",
	"obs-x264", "rtmp-services", "text-freetype2", "vlc-video", "decklink-captions",
	"decklink-output-ui", "obslua", "obspython", "frontend-tools",
}

// embeddedDisabledModules need the OBS Studio frontend and are never loaded.
var embeddedDisabledModules = []string{"obs-websocket", "frontend-tools"}

// disabledModulesVersion is the first engine release with obs_add_disabled_module.
// Pre-releases of that major version count as well.
var disabledModulesVersion = semver.Version{Major: 32}

// ParseEngineVersion parses an engine version string such as "31.1.2" or
// "32.0.0-rc1". Missing minor or patch components are taken as zero.
func ParseEngineVersion(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	for strings.Count(core, ".") < 2 {
		core += ".0"
	}
	return semver.NewVersion(core + suffix)
}

func (c *Context) disabledModules() []string {
	out := append([]string(nil), embeddedDisabledModules...)
	for _, m := range c.info.DisabledModules {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// registerModules tells the engine which modules it may load. Engines that
// support it get a deny list; older ones get the safe list minus the denied
// modules.
func (c *Context) registerModules(e libobs.Engine) {
	disabled := c.disabledModules()

	version, err := ParseEngineVersion(e.Version())
	if err != nil {
		c.log.Warn("unparsable engine version, using the safe module list", zap.String("version", e.Version()), zap.Error(err))
	}

	if err == nil && version.Major >= disabledModulesVersion.Major {
		if e.SupportsDisabledModules() {
			for _, m := range disabled {
				e.AddDisabledModule(m)
			}
			c.log.Debug("registered disabled modules", zap.Strings("modules", disabled))
			return
		}
		c.log.Warn("engine is 32.0.0 or newer but obs_add_disabled_module is missing, using the safe module list")
	}

	var safe []string
	for _, m := range safeModules {
		if !slices.Contains(disabled, m) {
			safe = append(safe, m)
		}
	}
	for _, m := range safe {
		e.AddSafeModule(m)
	}
	c.log.Debug("registered safe modules", zap.Strings("modules", safe))
}

// loadModules registers search paths and loads every module found on them.
// Modules that fail to load are logged, not returned.
func (c *Context) loadModules(e libobs.Engine) error {
	paths := c.info.Paths
	c.log.Info("adding module paths",
		zap.String("libobs_data", paths.LibobsData),
		zap.String("plugin_bin", paths.PluginBin),
		zap.String("plugin_data", paths.PluginData))

	if paths.LibobsData != "" {
		e.AddDataPath(paths.LibobsData)
		c.mu.Lock()
		c.dataPathAdded = true
		c.mu.Unlock()
	}
	if paths.PluginBin != "" {
		e.AddModulePath(paths.PluginBin, paths.PluginData)
	}
	c.registerModules(e)

	if failed := e.LoadAllModules(); len(failed) > 0 {
		c.log.Warn("some modules failed to load", zap.Strings("modules", failed))
	}
	e.LogLoadedModules()
	e.PostLoadModules()
	return nil
}
