package common

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDir is the absolute path to the warptimer configuration directory.
// It holds the daemon PID file and the journal database.
var ConfigDir string

func init() {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		dir = defaultConfigDir()
	}
	if err := SetConfigDir(dir); err != nil {
		ConfigDir = dir
	}
}

func defaultConfigDir() string {
	cdr, err := os.UserConfigDir()
	if err != nil {
		cdr = os.TempDir()
	}
	return filepath.Join(cdr, "warptimer")
}

// SetConfigDir sets the configuration directory to dir, creating it if it
// does not exist.
func SetConfigDir(dir string) error {
	if dir == "" {
		return errors.New("config dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}
	ConfigDir = abs
	return nil
}

// ConfigPath joins name onto ConfigDir.
func ConfigPath(name string) string {
	return filepath.Join(ConfigDir, name)
}
