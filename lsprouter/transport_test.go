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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/perltooling/perl-lsp/logging"
)

func frame(t *testing.T, v interface{}) string {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestTransportRoundTripsARequest(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())
	r.Handle("ping", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return "pong", nil
	})

	in := strings.NewReader(frame(t, map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": "ping",
	}))
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- NewTransport(r).Serve(ctx, in, &out)
	}()

	deadline := time.Now().Add(time.Second)
	for out.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if !strings.Contains(out.String(), `"result":"pong"`) {
		t.Fatalf("expected a pong response in output, got %q", out.String())
	}
}

func TestTransportIgnoresUnknownNotification(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())

	in := strings.NewReader(frame(t, map[string]interface{}{
		"jsonrpc": "2.0", "method": "textDocument/didSave",
	}))
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := NewTransport(r).Serve(ctx, in, &out)
	if err != nil && err != context.DeadlineExceeded {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no response written for a notification, got %q", out.String())
	}
}
