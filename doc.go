// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package usable provides composable scoped resource lifetimes in Go.
//
// The core type [Usable] represents a deferred scope: when used, it acquires
// zero or more nested resources, passes the value they produce to a
// continuation, and releases every acquired resource in reverse acquisition
// order before returning. Release happens whether the continuation returns,
// fails with an error, or panics.
//
// Scopes are built declaratively from smaller scopes, so composition sites
// never repeat the nested acquire/defer/release code by hand.
//
// # Design Philosophy
//
// usable provides:
//   - A single-method interface ([Usable.Use]) for every scope variant
//   - Small immutable values per constructor and combinator, no shared base state
//   - A hard boundary between composition (pure, lazy) and execution ([Value], [Drive])
//
// # Core Operations
//
// Execution:
//
//   - [Usable.Use]: Drive a scope with an error-returning continuation
//   - [Drive]: Drive a scope with a continuation producing a result
//   - [Value]: Force a scope with the identity continuation
//
// Primitive scopes:
//
//   - [Default]: Zero value, no resource
//   - [Return]: Plain value, no release step
//   - [Create]: Explicit setup/cleanup pair
//   - [Using]: io.Closer created on every use
//   - [Once]: Pre-built io.Closer, usable a single time
//   - [Stopwatch]: [Timer] running for the duration of the body
//   - [Fail]: Acquisition that always fails
//   - [Func]: Adapter from a CPS function
//
// Combinators:
//
//   - [Map]: Project the value (never closes the projection)
//   - [MapCloser]: Project to an io.Closer, optionally owning its release
//   - [Bind]: Drive the scope built from the outer value inside the outer scope
//   - [FlatMap]: Bind with a result selector
//   - [FlatMapCloser]: FlatMap for a directly constructed io.Closer
//   - [Then]: Nest a second scope, discarding the first value
//
// Ownership of a projected closer is always explicit (the release flag);
// it is never inferred from the dynamic type of the value.
//
// # Errors
//
//   - Acquisition failure: the setup error is returned, nothing is released.
//   - Continuation failure: every acquired resource is released, innermost
//     first, then the error is returned unchanged.
//   - Release failure: appended to the continuation error with
//     go.uber.org/multierr, so errors.Is matches either failure.
//   - Usage error: a second use of a [Once] scope returns [ErrAlreadyReleased].
//
// Panics are not recovered. Deferred releases run while the panic unwinds,
// and the panic is what reaches the caller: a release failure during a
// panic is lost.
//
// # Example
//
//	u := usable.FlatMap(
//		usable.Using(func() (*os.File, error) { return os.Open("a.txt") }),
//		func(a *os.File) usable.Usable[*os.File] {
//			return usable.Using(func() (*os.File, error) { return os.Open("b.txt") })
//		},
//		func(a, b *os.File) string { return a.Name() + "+" + b.Name() },
//	)
//
//	// Nothing has been opened yet.
//	names, err := usable.Value(u)
//	// b.txt closed, then a.txt closed.
package usable
