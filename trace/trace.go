// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trace provides nested, indented operation traces written to a
// zap logger. Trace scopes are ordinary io.Closer values and plug into
// usable compositions through the primitive constructors.
package trace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"code.hybscloud.com/usable"
)

// IndentSize is the number of spaces written per nesting level.
const IndentSize = 4

// ErrClosed is returned when a Scope is closed twice.
var ErrClosed = errors.New("trace: scope already closed")

// Tracer writes indented trace lines to a zap logger.
// A Tracer is not safe for concurrent use.
type Tracer struct {
	logger *zap.Logger
	depth  int
}

// New returns a Tracer writing to logger. A nil logger discards output.
func New(logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracer{logger: logger}
}

// Depth returns the current indentation level.
func (t *Tracer) Depth() int {
	return t.depth
}

// Indent increases the indentation level by one.
func (t *Tracer) Indent() {
	t.depth++
}

// Unindent decreases the indentation level by one, stopping at zero.
func (t *Tracer) Unindent() {
	if t.depth > 0 {
		t.depth--
	}
}

// WriteLine logs msg at info level, prefixed by the current indentation.
func (t *Tracer) WriteLine(msg string, fields ...zap.Field) {
	t.logger.Info(strings.Repeat(" ", t.depth*IndentSize)+msg, fields...)
}

// Enter logs "Enter: operation", indents, and returns the open Scope.
func (t *Tracer) Enter(operation string) *Scope {
	s := &Scope{tracer: t, operation: operation, id: uuid.New()}
	t.WriteLine("Enter: "+operation, zap.Stringer("span", s.id))
	t.Indent()
	return s
}

// Scope is one traced operation. Close ends it.
type Scope struct {
	tracer    *Tracer
	operation string
	id        uuid.UUID
	closed    bool
}

// Operation returns the traced operation name.
func (s *Scope) Operation() string {
	return s.operation
}

// ID returns the span id logged with both trace lines of s.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Closed reports whether Close has already succeeded.
func (s *Scope) Closed() bool {
	return s.closed
}

// Close unindents and logs "Leave: operation".
// A second Close returns ErrClosed and writes nothing.
func (s *Scope) Close() error {
	if s.closed {
		return fmt.Errorf("%w: %s", ErrClosed, s.operation)
	}
	s.tracer.Unindent()
	s.tracer.WriteLine("Leave: "+s.operation, zap.Stringer("span", s.id))
	s.closed = true
	return nil
}

// Source returns a lazy scope that enters operation on every use and
// leaves it after the continuation.
func Source(t *Tracer, operation string) usable.Usable[*Scope] {
	return usable.Using(func() (*Scope, error) {
		return t.Enter(operation), nil
	})
}

// Value logs "Value: v" and returns v unchanged.
func Value[T any](t *Tracer, v T) T {
	t.WriteLine(fmt.Sprintf("Value: %v", v))
	return v
}
