/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package lsprouter dispatches JSON-RPC requests and notifications onto
// a bounded worker pool with per-request cancellation and staleness
// rejection (§4.6, §5, §7). Grounded on `engine/processor.go` +
// `engine/taskqueue.go`: ECAL's event processor dispatches triggered
// rules onto a bounded task queue and tracks per-event monitors that
// can be cancelled or finished early - structurally the same problem as
// dispatching LSP requests with per-request cancellation, generalized
// from an event/rule/monitor vocabulary to a request/handler/context
// one.
package lsprouter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/perltooling/perl-lsp/logging"
)

/*
Handler processes one request or notification's params and returns a
result value to be marshalled into the JSON-RPC response (nil for
notifications).
*/
type Handler func(ctx context.Context, params json.RawMessage) (interface{}, error)

/*
StalenessCheck reports whether a request should be rejected without
invoking its handler, because it references a document at an older
version than the store currently holds (§5 implicit cancellation).
*/
type StalenessCheck func(method string, params json.RawMessage) (uri string, stale bool)

/*
Router dispatches requests onto a semaphore-bounded worker pool,
following the "Task.Run/HandleError" shape of the teacher's
*engine.Task*; the run and failure paths are inline in the Router's
dispatch methods, and in-flight requests are held as cancel functions
in the inflight map.
*/
type Router struct {
	mu       sync.Mutex
	handlers map[string]Handler
	inflight map[string]context.CancelFunc

	sem        *semaphore.Weighted
	trace      *trace
	logger     *logging.Logger
	staleCheck StalenessCheck
}

/*
NewRouter creates a Router with workerCount concurrent request slots
and a recent-request trace of traceSize entries.
*/
func NewRouter(workerCount, traceSize int, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{
		handlers: make(map[string]Handler),
		inflight: make(map[string]context.CancelFunc),
		sem:      semaphore.NewWeighted(int64(workerCount)),
		trace:    newTrace(traceSize),
		logger:   logger,
	}
}

/*
Handle registers h as the handler for method, overwriting any previous
registration.
*/
func (r *Router) Handle(method string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[method] = h
}

/*
SetStalenessCheck installs the callback used to reject requests that
reference a stale document version.
*/
func (r *Router) SetStalenessCheck(fn StalenessCheck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staleCheck = fn
}

func idKey(id interface{}) string {
	return fmt.Sprintf("%v", id)
}

/*
Dispatch runs the handler registered for method with the given request
id, enforcing staleness rejection, bounded concurrency, and
cancellation (§5, §7). It blocks until the handler completes, is
cancelled, or ctx is done while waiting for a worker slot.
*/
func (r *Router) Dispatch(ctx context.Context, id interface{}, method string, params json.RawMessage) (interface{}, error) {
	traceID := uuid.New().String()
	started := time.Now()
	log := r.logger.With("trace_id", traceID, "method", method, "id", fmt.Sprint(id))

	r.mu.Lock()
	check := r.staleCheck
	r.mu.Unlock()

	if check != nil {
		if uri, stale := check(method, params); stale {
			log.LogInfo("rejecting stale request for ", uri)
			return nil, ErrContentModified(uri)
		}
	}

	r.mu.Lock()
	h, ok := r.handlers[method]
	r.mu.Unlock()
	if !ok {
		return nil, ErrMethodNotFound(method)
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, WrapProtocolError(CodeInternalError, "acquiring worker slot", err)
	}
	defer r.sem.Release(1)

	reqCtx, cancel := context.WithCancel(ctx)
	key := idKey(id)
	r.mu.Lock()
	r.inflight[key] = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
		cancel()
	}()

	result, err := h(reqCtx, params)

	entry := traceEntry{TraceID: traceID, Method: method, Started: started, Duration: time.Since(started)}
	if reqCtx.Err() == context.Canceled {
		entry.Err = "cancelled"
		r.trace.record(entry)
		log.LogInfo("request cancelled")
		return nil, ErrRequestCancelled()
	}
	if err != nil {
		entry.Err = err.Error()
		r.trace.record(entry)
		log.LogError("handler error: ", err)
		if pe, ok := err.(*ProtocolError); ok {
			return nil, pe
		}
		return nil, WrapProtocolError(CodeInternalError, "handler error", err)
	}

	r.trace.record(entry)
	return result, nil
}

/*
Notify runs the handler registered for method with no associated
request id and no response, used for `textDocument/didOpen` and
similar notifications.
*/
func (r *Router) Notify(ctx context.Context, method string, params json.RawMessage) error {
	r.mu.Lock()
	h, ok := r.handlers[method]
	r.mu.Unlock()
	if !ok {
		// Unknown notifications are silently ignored per the LSP spec
		// ("the client or server that receives a notification with an
		// unknown method should just ignore it").
		return nil
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return WrapProtocolError(CodeInternalError, "acquiring worker slot", err)
	}
	defer r.sem.Release(1)

	_, err := h(ctx, params)
	if err != nil {
		r.logger.LogError("notification handler error for ", method, ": ", err)
	}
	return err
}

/*
CancelRequest implements `$/cancelRequest`: cancels the context of the
inflight request with the given id, if still running.
*/
func (r *Router) CancelRequest(id interface{}) {
	r.mu.Lock()
	cancel, ok := r.inflight[idKey(id)]
	r.mu.Unlock()
	if ok {
		cancel()
	}
}

/*
RecentTrace returns the recent request trace for `--health`/diagnostics.
*/
func (r *Router) RecentTrace() []traceEntry {
	return r.trace.Recent()
}
