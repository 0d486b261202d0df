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
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/perltooling/perl-lsp/logging"
)

func TestDispatchReturnsHandlerResult(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())
	r.Handle("ping", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return "pong", nil
	})

	res, err := r.Dispatch(context.Background(), 1, "ping", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "pong" {
		t.Fatalf("unexpected result: %v", res)
	}
}

func TestDispatchMethodNotFound(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())
	_, err := r.Dispatch(context.Background(), 1, "missing", nil)
	pe, ok := err.(*ProtocolError)
	if !ok || pe.Code != CodeMethodNotFound {
		t.Fatalf("expected a method-not-found ProtocolError, got %v", err)
	}
}

func TestDispatchRejectsStaleRequest(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())
	r.Handle("hover", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return "should not run", nil
	})
	r.SetStalenessCheck(func(method string, params json.RawMessage) (string, bool) {
		return "file:///a.pl", true
	})

	_, err := r.Dispatch(context.Background(), 1, "hover", nil)
	pe, ok := err.(*ProtocolError)
	if !ok || pe.Code != CodeContentModified {
		t.Fatalf("expected a content-modified ProtocolError, got %v", err)
	}
}

func TestCancelRequestStopsHandler(t *testing.T) {
	r := NewRouter(2, 8, logging.NewNop())
	started := make(chan struct{})
	r.Handle("slow", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := r.Dispatch(context.Background(), 42, "slow", nil)
		done <- err
	}()

	<-started
	r.CancelRequest(42)

	select {
	case err := <-done:
		pe, ok := err.(*ProtocolError)
		if !ok || pe.Code != CodeRequestCancelled {
			t.Fatalf("expected a request-cancelled ProtocolError, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cancellation to take effect")
	}
}
