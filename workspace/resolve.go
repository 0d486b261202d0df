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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

/*
ModuleLocator resolves a `use Foo::Bar` module name to a file under a
workspace root, adapted from `util/import.go`'s FileImportLocator:
same root-relative join plus isSubpath containment check (so a
crafted module name like `../../etc/passwd` can never resolve outside
the workspace), generalized from "read the file's ECAL source" to
"return the candidate path for Document Links resolution" since
perl-lsp never needs the file's contents here, only its location.
*/
type ModuleLocator struct {
	Root string
}

/*
Resolve maps a `::`-separated module name to its candidate path under
lib/ beneath Root, returning an error if the resolved path would
escape Root.
*/
func (l *ModuleLocator) Resolve(module string) (string, error) {
	rel := filepath.Join("lib", filepath.FromSlash(strings.ReplaceAll(module, "::", "/"))+".pm")
	candidate := filepath.Clean(filepath.Join(l.Root, rel))

	ok, err := isSubpath(l.Root, candidate)
	if err == nil && !ok {
		err = fmt.Errorf("module path escapes workspace root: %v", module)
	}
	if err != nil {
		return "", err
	}
	return candidate, nil
}

/*
Exists reports whether Resolve's candidate path is present on disk.
*/
func (l *ModuleLocator) Exists(module string) bool {
	path, err := l.Resolve(module)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && rel != "..", err
}
