// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

// Usable represents a deferred resource scope producing a value of type T.
//
// Use acquires whatever the scope manages, passes the value to the
// continuation k, and releases every acquired resource before it returns,
// whether k returns normally, returns an error or panics. Nested scopes
// release in the reverse order of their acquisition.
//
// Constructing a Usable performs no side effects; acquisition happens only
// inside Use.
type Usable[T any] interface {
	Use(k func(T) error) error
}

// Func adapts an ordinary CPS function to the Usable interface.
// Func is the primitive constructor for scopes that need direct access to
// the continuation.
type Func[T any] func(k func(T) error) error

// Use calls f(k).
func (f Func[T]) Use(k func(T) error) error {
	return f(k)
}
