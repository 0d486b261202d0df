/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package logging wraps go.uber.org/zap behind the teacher's
// LogLevelLogger shape: a small Logger value with LogError/LogInfo/
// LogDebug methods and a validated level, threaded explicitly through
// the router and document store rather than reached as a package-level
// singleton.
package logging

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

/*
Level mirrors the teacher's util.LogLevel string enum.
*/
type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Error Level = "error"
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

/*
Logger wraps a *zap.SugaredLogger with the teacher's LogError/LogInfo/
LogDebug call shape (variadic interface{} arguments concatenated via
fmt.Sprint), so call sites ported from the teacher's idiom need no
restructuring - only the backing implementation changed from a
hand-rolled level filter to a real zap core.
*/
type Logger struct {
	level Level
	sugar *zap.SugaredLogger
}

/*
New builds a Logger writing to stderr at the given level (§6 "--log
selects stderr logging"). level must be one of "debug", "info",
"error".
*/
func New(level string) (*Logger, error) {
	lvl := Level(strings.ToLower(level))
	if lvl != Debug && lvl != Info && lvl != Error {
		return nil, errors.Errorf("invalid log level: %v", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(lvl.zapLevel())
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logging: building zap core")
	}

	return &Logger{level: lvl, sugar: zl.Sugar()}, nil
}

/*
NewNop returns a Logger that discards everything, for tests and for
`--stdio` runs where stderr logging wasn't requested.
*/
func NewNop() *Logger {
	return &Logger{level: Error, sugar: zap.NewNop().Sugar()}
}

/*
Level returns the logger's configured level.
*/
func (l *Logger) Level() Level { return l.level }

/*
LogError adds a new error log message.
*/
func (l *Logger) LogError(m ...interface{}) {
	l.sugar.Error(fmt.Sprint(m...))
}

/*
LogInfo adds a new info log message.
*/
func (l *Logger) LogInfo(m ...interface{}) {
	l.sugar.Info(fmt.Sprint(m...))
}

/*
LogDebug adds a new debug log message.
*/
func (l *Logger) LogDebug(m ...interface{}) {
	l.sugar.Debug(fmt.Sprint(m...))
}

/*
With returns a child Logger with structured fields attached to every
subsequent message (request id, document uri, ...), the idiom
providers and the router use to annotate per-request log lines.
*/
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.With(keysAndValues...)}
}

/*
Sync flushes any buffered log entries, called once at process exit.
*/
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
