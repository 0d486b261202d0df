/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package providers

import "fmt"

/*
builtinDoc maps a built-in Perl function name to its one-line doc
string, the same registration idiom as `stdlib/stdlib.go`'s
AddStdlibPkg/AddStdlibFunc doc-string map, generalized from ECAL's
pluggable stdlib packages to a fixed table of Perl's core functions
since completion needs no runtime plugin loading.
*/
var builtinDoc = make(map[string]string)

func addBuiltin(name, doc string) {
	if _, exists := builtinDoc[name]; exists {
		panic(fmt.Sprintf("builtin %v already registered", name))
	}
	builtinDoc[name] = doc
}

func init() {
	addBuiltin("print", "print LIST — outputs LIST to the currently selected filehandle")
	addBuiltin("printf", "printf FORMAT, LIST — formatted print")
	addBuiltin("push", "push ARRAY, LIST — appends LIST to ARRAY")
	addBuiltin("pop", "pop ARRAY — removes and returns the last element")
	addBuiltin("shift", "shift ARRAY — removes and returns the first element")
	addBuiltin("unshift", "unshift ARRAY, LIST — prepends LIST to ARRAY")
	addBuiltin("splice", "splice ARRAY, OFFSET, LENGTH, LIST — removes/replaces elements")
	addBuiltin("keys", "keys HASH|ARRAY — returns a list of keys/indices")
	addBuiltin("values", "values HASH|ARRAY — returns a list of values")
	addBuiltin("each", "each HASH|ARRAY — iterates key/value pairs")
	addBuiltin("map", "map BLOCK LIST — applies BLOCK to each element")
	addBuiltin("grep", "grep BLOCK LIST — filters LIST by BLOCK")
	addBuiltin("sort", "sort SUBNAME LIST — sorts LIST")
	addBuiltin("join", "join EXPR, LIST — joins LIST with EXPR")
	addBuiltin("split", "split /PATTERN/, EXPR — splits EXPR by PATTERN")
	addBuiltin("defined", "defined EXPR — tests whether EXPR has a value")
	addBuiltin("exists", "exists EXPR — tests whether a hash key or array index exists")
	addBuiltin("delete", "delete EXPR — removes a hash key or array element")
	addBuiltin("bless", "bless REF, CLASSNAME — associates REF with CLASSNAME")
	addBuiltin("ref", "ref EXPR — returns the reference type of EXPR")
	addBuiltin("die", "die LIST — raises an exception")
	addBuiltin("warn", "warn LIST — prints a warning to STDERR")
	addBuiltin("eval", "eval BLOCK|EXPR — traps exceptions")
	addBuiltin("local", "local EXPR — dynamically scopes a global variable")
	addBuiltin("wantarray", "wantarray — reports the calling context")
	addBuiltin("length", "length EXPR — returns the length of EXPR in characters")
	addBuiltin("substr", "substr EXPR, OFFSET, LENGTH — extracts a substring")
	addBuiltin("sprintf", "sprintf FORMAT, LIST — formats LIST per FORMAT")
	addBuiltin("scalar", "scalar EXPR — forces scalar context")
	addBuiltin("open", "open FILEHANDLE, MODE, EXPR — opens a file")
	addBuiltin("close", "close FILEHANDLE — closes a file")
	addBuiltin("require", "require EXPR — loads a module or file at runtime")
}

/*
receiverMethods maps a conservative variable-name-suffix heuristic to
known methods for the inferred receiver type (§4.7 "variable name
ending in `$dbh` → `DBI::db`").
*/
var receiverMethods = map[string][]string{
	"dbh": {"prepare", "execute", "fetchrow_array", "fetchrow_hashref", "commit", "rollback", "disconnect"},
	"sth": {"execute", "fetchrow_array", "fetchrow_hashref", "finish", "rows"},
	"cgi": {"param", "header", "redirect", "upload"},
	"req": {"param", "header", "method", "uri"},
	"res": {"body", "status", "header"},
}

/*
MethodsForReceiver returns the known methods for a variable's inferred
receiver type, matching by suffix after the final underscore the way
`$dbh`/`$sth` naming convention implies a DBI handle.
*/
func MethodsForReceiver(varName string) []string {
	suffix := varName
	for i := len(varName) - 1; i >= 0; i-- {
		if varName[i] == '_' {
			suffix = varName[i+1:]
			break
		}
	}
	return receiverMethods[suffix]
}
