// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests bypass XDG_CONFIG_HOME and os.UserConfigDir.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
