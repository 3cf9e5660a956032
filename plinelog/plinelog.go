// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plinelog lets callers observe best-effort diagnostics (the offset
// and boolean stitching steps warn when a chain cannot be closed) without the core ever deciding on their behalf that a process should log
// anywhere. The default Logger is a no-op; callers opt in with an adapter.
package plinelog

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger receives diagnostic events from the core. Implementations must be
// safe for concurrent use; the core never mutates shared state through it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// noop discards everything. It is the package default so that importing
// the core never has an observable logging side effect.
type noop struct{}

func (noop) Debugf(string, ...any) {}
func (noop) Warnf(string, ...any)  {}

// Noop is the zero-cost default Logger.
var Noop Logger = noop{}

// Slog adapts an *slog.Logger to Logger. Debugf maps to slog's Debug level,
// Warnf to Warn.
type Slog struct {
	L   *slog.Logger
	Ctx context.Context
}

// NewSlog wraps l for use as a Logger, with Ctx set to context.Background.
// A Slog whose Ctx is nil also logs with context.Background.
func NewSlog(l *slog.Logger) *Slog {
	return &Slog{L: l, Ctx: context.Background()}
}

func (s *Slog) ctx() context.Context {
	if s.Ctx != nil {
		return s.Ctx
	}
	return context.Background()
}

func (s *Slog) Debugf(format string, args ...any) {
	s.L.Log(s.ctx(), slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (s *Slog) Warnf(format string, args ...any) {
	s.L.Log(s.ctx(), slog.LevelWarn, fmt.Sprintf(format, args...))
}
