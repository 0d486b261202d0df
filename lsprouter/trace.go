/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package lsprouter

import (
	"fmt"
	"time"

	"devt.de/krotik/common/datautil"
)

/*
traceEntry is one row of the bounded recent-request trace used by
`--health`/diagnostics, mirroring `util.MemoryLogger`'s
RingBuffer-of-strings approach but keeping structured fields instead of
pre-formatting to a string.
*/
type traceEntry struct {
	TraceID  string
	Method   string
	Started  time.Time
	Duration time.Duration
	Err      string
}

func (t traceEntry) String() string {
	if t.Err != "" {
		return fmt.Sprintf("%s %s %s error=%s", t.Started.Format(time.RFC3339), t.Method, t.Duration, t.Err)
	}
	return fmt.Sprintf("%s %s %s ok", t.Started.Format(time.RFC3339), t.Method, t.Duration)
}

/*
trace is a small wrapper around datautil.RingBuffer typed to
traceEntry, the same "ring buffer behind a typed facade" shape as
util.MemoryLogger.
*/
type trace struct {
	*datautil.RingBuffer
}

func newTrace(size int) *trace {
	return &trace{datautil.NewRingBuffer(size)}
}

func (t *trace) record(e traceEntry) {
	t.Add(e)
}

/*
Recent returns the recorded trace entries, oldest first.
*/
func (t *trace) Recent() []traceEntry {
	raw := t.Slice()
	out := make([]traceEntry, len(raw))
	for i, r := range raw {
		out[i] = r.(traceEntry)
	}
	return out
}
