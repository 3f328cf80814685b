// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

import "io"

// Combinators build a new scope around existing ones. They only capture
// their arguments; sources are driven when the combined scope is used.
//
// Minimal definition: Return and Bind. FlatMap adds a result selector,
// Map and Then are derived forms that avoid the intermediate scope.
// The Closer variants take over the release of a plain io.Closer that
// was produced by a direct call instead of a scope.

// Map applies f to the value of m.
// The projected value is handed to the continuation and never closed,
// even if it implements io.Closer.
func Map[T, U any](m Usable[T], f func(T) U) Usable[U] {
	return mapUsable[T, U]{source: m, selector: f}
}

type mapUsable[T, U any] struct {
	source   Usable[T]
	selector func(T) U
}

func (u mapUsable[T, U]) Use(k func(U) error) error {
	return u.source.Use(func(t T) error {
		return k(u.selector(t))
	})
}

// MapCloser applies f to the value of m and, when release is true, owns
// the projected closer: it is closed after the continuation returns or
// fails, before m releases its own resource.
//
// With release false the projected value is never closed. If f fails,
// its error is returned and nothing is closed for it.
func MapCloser[T any, U io.Closer](m Usable[T], f func(T) (U, error), release bool) Usable[U] {
	return mapCloserUsable[T, U]{source: m, selector: f, release: release}
}

type mapCloserUsable[T any, U io.Closer] struct {
	source   Usable[T]
	selector func(T) (U, error)
	release  bool
}

func (u mapCloserUsable[T, U]) Use(k func(U) error) error {
	return u.source.Use(func(t T) (err error) {
		projected, err := u.selector(t)
		if err != nil {
			return err
		}
		if u.release && !isNil(projected) {
			defer closeInto(&err, projected)
		}
		return k(projected)
	})
}

// Bind sequences two scopes: the scope returned by f is driven inside the
// continuation of m, so its resource is acquired after and released
// before the resource of m.
func Bind[O, I any](m Usable[O], f func(O) Usable[I]) Usable[I] {
	return bindUsable[O, I]{source: m, selector: f}
}

type bindUsable[O, I any] struct {
	source   Usable[O]
	selector func(O) Usable[I]
}

func (u bindUsable[O, I]) Use(k func(I) error) error {
	return u.source.Use(func(o O) error {
		return u.selector(o).Use(k)
	})
}

// FlatMap drives the inner scope built by f from the value of m, and
// passes combine(outer, inner) to the continuation.
//
// Release order is inner first, then outer. If f panics, the outer
// resource is still released; the inner scope was never built.
func FlatMap[O, I, R any](m Usable[O], f func(O) Usable[I], combine func(O, I) R) Usable[R] {
	return flatMapUsable[O, I, R]{source: m, selector: f, combine: combine}
}

type flatMapUsable[O, I, R any] struct {
	source   Usable[O]
	selector func(O) Usable[I]
	combine  func(O, I) R
}

func (u flatMapUsable[O, I, R]) Use(k func(R) error) error {
	return u.source.Use(func(o O) error {
		return u.selector(o).Use(func(i I) error {
			return k(u.combine(o, i))
		})
	})
}

// FlatMapCloser is FlatMap for a step that produces a plain closer by a
// direct call instead of a scope.
//
// When release is true the closer returned by f is closed after the
// continuation, before m releases. If f fails, the outer resource is
// released and the inner value is not closed. A nil closer is skipped.
func FlatMapCloser[O any, I io.Closer, R any](m Usable[O], f func(O) (I, error), combine func(O, I) R, release bool) Usable[R] {
	return flatMapCloserUsable[O, I, R]{source: m, selector: f, combine: combine, release: release}
}

type flatMapCloserUsable[O any, I io.Closer, R any] struct {
	source   Usable[O]
	selector func(O) (I, error)
	combine  func(O, I) R
	release  bool
}

func (u flatMapCloserUsable[O, I, R]) Use(k func(R) error) error {
	return u.source.Use(func(o O) (err error) {
		inner, err := u.selector(o)
		if err != nil {
			return err
		}
		if u.release && !isNil(inner) {
			defer closeInto(&err, inner)
		}
		return k(u.combine(o, inner))
	})
}

// Then nests n inside m, discarding the value of m.
// Both resources are held while the continuation runs.
func Then[A, B any](m Usable[A], n Usable[B]) Usable[B] {
	return thenUsable[A, B]{first: m, second: n}
}

type thenUsable[A, B any] struct {
	first  Usable[A]
	second Usable[B]
}

func (u thenUsable[A, B]) Use(k func(B) error) error {
	return u.first.Use(func(A) error {
		return u.second.Use(k)
	})
}
