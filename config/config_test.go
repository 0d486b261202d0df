/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import (
	"testing"
)

func TestConfig(t *testing.T) {
	Reset()

	if res := Str(PositionEncoding); res != "utf-16" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(WorkerCount); res != 4 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxRecursionDepth); res != 256 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestConfigSetOverridesDefault(t *testing.T) {
	Reset()

	Set(LogLevel, "debug")
	if res := Str(LogLevel); res != "debug" {
		t.Error("Unexpected result:", res)
	}

	Reset()
	if res := Str(LogLevel); res != "info" {
		t.Error("Reset did not restore the default:", res)
	}
}
