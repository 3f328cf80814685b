// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

import (
	"errors"
	"io"
	"reflect"

	"go.uber.org/multierr"
)

// ErrAlreadyReleased reports a usage error: a scope created by [Once] was
// used after its resource had already been released.
//
// It signals programmer misuse and is never returned for a failure of the
// resource itself. Test with errors.Is.
var ErrAlreadyReleased = errors.New("usable: already released")

// closeInto closes c and merges a close failure into *err.
// Deferred by every scope that owns a release obligation. A continuation
// error stays first in the combined error, so both remain visible to
// errors.Is and neither is hidden. While a panic unwinds, *err is never
// returned, so a close failure at that point is lost.
func closeInto(err *error, c io.Closer) {
	multierr.AppendInvoke(err, multierr.Close(c))
}

// cleanupInto runs cleanup(v) and merges its failure into *err.
func cleanupInto[T any](err *error, cleanup func(T) error, v T) {
	multierr.AppendInvoke(err, multierr.Invoke(func() error {
		return cleanup(v)
	}))
}

// isNil reports whether v is a nil interface or a nil pointer-like value.
// A nil closer produced by a selector has nothing to release.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
