// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Settings are layered: built-in defaults, then an optional CUE file
// ($XDG_CONFIG_HOME/fontnexus/config.cue, ./config.cue, or an explicit
// --config path), then the environment. WINDOWS_FONT_GROUPS selects the
// Microsoft font groups; every other key can be overridden with
// FONTNEXUS_<SECTION>_<KEY> (e.g. FONTNEXUS_TOOLS_SEVEN_ZIP).
//
// Config files are validated against the embedded CUE schema
// (config_schema.cue) before they are merged.
package config
