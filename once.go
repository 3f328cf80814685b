// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Once wraps an already constructed resource in a single-use scope.
//
// The first Use passes the resource to the continuation and closes it
// afterwards. Any later Use returns an error matching [ErrAlreadyReleased]
// without calling the continuation or closing the resource again.
//
// The resource exists as soon as it is passed to Once: only its release is
// deferred to the scope.
func Once[T io.Closer](resource T) Usable[T] {
	return &onceUsable[T]{resource: resource}
}

type onceUsable[T io.Closer] struct {
	used     atomic.Uintptr
	resource T
}

func (u *onceUsable[T]) Use(k func(T) error) (err error) {
	if u.used.Add(1) != 1 {
		return fmt.Errorf("%w: %T", ErrAlreadyReleased, u.resource)
	}
	defer closeInto(&err, u.resource)
	return k(u.resource)
}

// Released reports whether u has already been used.
// Scopes not created by [Once] always report false.
func Released[T any](u Usable[T]) bool {
	if o, ok := u.(usedReporter); ok {
		return o.usedOnce()
	}
	return false
}

type usedReporter interface {
	usedOnce() bool
}

func (u *onceUsable[T]) usedOnce() bool {
	return u.used.Load() != 0
}
