/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package symbols

import (
	"strings"
	"testing"

	"github.com/perltooling/perl-lsp/parser"
)

func TestPragmaTrackActivatesAfterUseStrict(t *testing.T) {
	src := "my $x = 1;\nuse strict;\nmy $y = 2;\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	track := BuildPragmaTrack(root)

	before := track.At(strings.Index(src, "my $x"))
	if before.StrictVars {
		t.Fatal("expected strict vars to be off before the pragma")
	}

	after := track.At(strings.Index(src, "my $y"))
	if !after.StrictVars {
		t.Fatal("expected strict vars to be on after `use strict`")
	}
}

func TestPragmaTrackNoStrictDisables(t *testing.T) {
	src := "use strict;\nno strict 'refs';\nmy $x = 1;\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	track := BuildPragmaTrack(root)
	state := track.At(strings.Index(src, "my $x"))
	if state.StrictRefs {
		t.Fatal("expected `no strict` to turn strict refs back off")
	}
}
