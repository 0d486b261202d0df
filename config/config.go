/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package config holds the server's configuration, a direct
// generalization of the teacher's typed-map-accessor config package.
// Values are populated exclusively from CLI flags in cmd/perl-lsp - no
// environment variable lookups anywhere in this package.
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of perl-lsp.
*/
const ProductVersion = "0.1.0"

/*
Known configuration options.
*/
const (
	WorkerCount               = "WorkerCount"
	MaxRecursionDepth         = "MaxRecursionDepth"
	PositionEncoding          = "PositionEncoding"
	LogLevel                  = "LogLevel"
	DiagnosticsDebounceMillis = "DiagnosticsDebounceMillis"
)

/*
DefaultConfig is the default configuration, used before any CLI flags
are applied.
*/
var DefaultConfig = map[string]interface{}{
	WorkerCount:               4,
	MaxRecursionDepth:         256,
	PositionEncoding:          "utf-16",
	LogLevel:                  "info",
	DiagnosticsDebounceMillis: 250,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

/*
Initialise the config.
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

/*
Reset restores Config to DefaultConfig, used by tests and by
cmd/perl-lsp before applying a fresh set of parsed flags.
*/
func Reset() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}
	Config = data
}

/*
Set overrides a single config value, called by cmd/perl-lsp once
pflag has parsed the process's command-line flags.
*/
func Set(key string, value interface{}) {
	Config[key] = value
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
