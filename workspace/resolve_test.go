/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleLocatorResolvesNestedModule(t *testing.T) {
	l := &ModuleLocator{Root: "/workspace"}
	path, err := l.Resolve("Foo::Bar")
	require.NoError(t, err)
	require.Equal(t, "/workspace/lib/Foo/Bar.pm", path)
}

func TestModuleLocatorRejectsEscapingModule(t *testing.T) {
	l := &ModuleLocator{Root: "/workspace"}
	_, err := l.Resolve("..::..::etc::passwd")
	require.Error(t, err)
}
