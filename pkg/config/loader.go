package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "VOCTOZOOM"

// Load reads config.yaml from the given path or the default locations.
// Environment variables with the VOCTOZOOM_ prefix take precedence,
// e.g. VOCTOZOOM_FRAME_WIDTH. Without any file only defaults and the
// environment are used.
func Load(path string) (*Config, error) {
	var conf Config
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.voctozoom")
		}
	}
	err := fig.Load(&conf, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) && path == "" {
		conf = Config{}
		err = fig.Load(&conf, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, err
	}
	return &conf, nil
}
