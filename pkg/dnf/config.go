package dnf

import (
	"os"

	"gopkg.in/ini.v1"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// loadConf validates and parses an engine configuration file. A supplied
// path that does not exist is a configuration error, raised before any
// engine command runs.
func loadConf(path string) (*ini.File, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, engine.NewConfigurationError("invalid configuration path: "+path, err)
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, engine.NewConfigurationError("cannot parse configuration file: "+path, err)
	}
	return f, nil
}

// confGPGCheck reads the [main] gpgcheck setting. The second return value
// reports whether the setting is present at all.
func confGPGCheck(f *ini.File) (bool, bool) {
	if f == nil {
		return true, false
	}
	key := f.Section("main").Key("gpgcheck")
	if key.String() == "" {
		return true, false
	}
	v, err := key.Bool()
	if err != nil {
		return true, false
	}
	return v, true
}
