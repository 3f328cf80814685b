// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

import "io"

// Primitive scopes: leaves of a composition with no source scope of their own.

// Default returns a scope whose continuation receives the zero value of T.
// Nothing is acquired and nothing is released.
func Default[T any]() Usable[T] {
	return defaultUsable[T]{}
}

type defaultUsable[T any] struct{}

func (defaultUsable[T]) Use(k func(T) error) error {
	var zero T
	return k(zero)
}

// Return lifts a plain value into a scope with no release step.
// It is the usual starting point of a composition built from ordinary data.
func Return[T any](v T) Usable[T] {
	return valueUsable[T]{value: v}
}

type valueUsable[T any] struct {
	value T
}

func (u valueUsable[T]) Use(k func(T) error) error {
	return k(u.value)
}

// Fail returns a scope whose acquisition always fails with err.
// The continuation is never called.
func Fail[T any](err error) Usable[T] {
	return failUsable[T]{err: err}
}

type failUsable[T any] struct {
	err error
}

func (u failUsable[T]) Use(func(T) error) error {
	return u.err
}

// Create builds a scope from an explicit setup/cleanup pair.
//
// On every use, setup runs immediately before the continuation and
// cleanup runs immediately after it, even if the continuation fails or
// panics. If setup fails, its error is returned and cleanup never runs:
// nothing was acquired.
func Create[T any](setup func() (T, error), cleanup func(T) error) Usable[T] {
	return createUsable[T]{setup: setup, cleanup: cleanup}
}

type createUsable[T any] struct {
	setup   func() (T, error)
	cleanup func(T) error
}

func (u createUsable[T]) Use(k func(T) error) (err error) {
	v, err := u.setup()
	if err != nil {
		return err
	}
	defer cleanupInto(&err, u.cleanup, v)
	return k(v)
}

// Using returns a scope that calls create on every use and closes the
// created resource after the continuation.
func Using[T io.Closer](create func() (T, error)) Usable[T] {
	return usingUsable[T]{create: create}
}

type usingUsable[T io.Closer] struct {
	create func() (T, error)
}

func (u usingUsable[T]) Use(k func(T) error) (err error) {
	r, err := u.create()
	if err != nil {
		return err
	}
	defer closeInto(&err, r)
	return k(r)
}
