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

package plinelog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNoopDiscardsEverything(t *testing.T) {
	// Must not panic and must produce no observable effect.
	Noop.Debugf("dropping slice near %v", 1.0)
	Noop.Warnf("stitch gave up after %d attempts", 3)
}

func TestSlogAdapterFormatsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	logger.Debugf("dropped %d degenerate slices", 2)
	out := buf.String()
	if !strings.Contains(out, "dropped 2 degenerate slices") {
		t.Errorf("Debugf output = %q, want it to contain the formatted message", out)
	}
	if !strings.Contains(out, "DEBUG") {
		t.Errorf("Debugf output = %q, want DEBUG level", out)
	}

	buf.Reset()
	logger.Warnf("stitching stalled after %d iterations", 5)
	out = buf.String()
	if !strings.Contains(out, "stitching stalled after 5 iterations") {
		t.Errorf("Warnf output = %q, want it to contain the formatted message", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("Warnf output = %q, want WARN level", out)
	}
}

func TestSlogAdapterNilContextFallsBackToBackground(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, nil)
	logger := &Slog{L: slog.New(handler)}
	logger.Ctx = nil

	logger.Warnf("no context set")
	if !strings.Contains(buf.String(), "no context set") {
		t.Errorf("expected Warnf to still log with a nil Ctx, got %q", buf.String())
	}
}
