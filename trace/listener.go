// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Listener records trace lines in memory.
type Listener struct {
	logs   *observer.ObservedLogs
	tracer *Tracer
}

// NewListener returns a Listener with its own Tracer.
func NewListener() *Listener {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Listener{logs: logs, tracer: New(zap.New(core))}
}

// Tracer returns the Tracer whose output l records.
func (l *Listener) Tracer() *Tracer {
	return l.tracer
}

// Lines returns the recorded messages in order.
func (l *Listener) Lines() []string {
	entries := l.logs.All()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Message)
	}
	return lines
}

// Entries returns the recorded entries with their fields.
func (l *Listener) Entries() []observer.LoggedEntry {
	return l.logs.All()
}

// Reset discards everything recorded so far.
func (l *Listener) Reset() {
	l.logs.TakeAll()
}
