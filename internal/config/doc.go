// Package config loads boardsync settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. A TOML file: the --config flag, else BOARDSYNC_CONFIG, else
//     ./boardsync.toml when it exists
//  3. Environment variables (BOARDSYNC_LOG_MODE, BOARDSYNC_LOG_FORMAT)
//  4. Command line flags
//
// The resolver section replaces the default column rules when rules are
// given and extends the default legacy labels.
package config
