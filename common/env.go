// Package common provides environment variable names and the configuration
// directory shared by the warptimer command line and its daemon.
package common

import (
	"os"
	"strconv"
)

// Environment variable names for configuration.
const (
	// ConfigDirEnv overrides the default configuration directory.
	ConfigDirEnv = "WARPTIMER_CONFIG_DIR"

	// DebugEnv enables debug logging.
	DebugEnv = "WARPTIMER_DEBUG"

	// ClockEnv selects the default wakeup strategy ("ticker" or "alarm").
	ClockEnv = "WARPTIMER_CLOCK"
)

// IsDebug reports whether DebugEnv holds a true boolean value.
func IsDebug() bool {
	v, err := strconv.ParseBool(os.Getenv(DebugEnv))
	return err == nil && v
}
