// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

// Drive runs u with the continuation k and returns the continuation's
// result. Every resource u acquires is released before Drive returns.
//
// Drive carries the result type R that the Use method cannot declare.
// If k fails, the returned value is k's value alongside the error.
func Drive[T, R any](u Usable[T], k func(T) (R, error)) (R, error) {
	var result R
	err := u.Use(func(t T) error {
		var kerr error
		result, kerr = k(t)
		return kerr
	})
	return result, err
}

// identity is the identity continuation for Value.
// Named generic function produces a static function value per type instantiation.
func identity[A any](a A) (A, error) { return a, nil }

// Value forces u with the identity continuation.
// The returned value is read after every composed resource, innermost
// first, has been released.
func Value[T any](u Usable[T]) (T, error) {
	return Drive(u, identity[T])
}
