// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable_test

import (
	"slices"
	"testing"

	"code.hybscloud.com/usable"
)

// recorder logs acquisitions and releases in the order they happen.
type recorder struct {
	events []string
}

func (r *recorder) add(event string) {
	r.events = append(r.events, event)
}

// open acquires a named resource eagerly.
func (r *recorder) open(name string) *resource {
	r.add("acquire " + name)
	return &resource{name: name, rec: r}
}

// create returns a lazy scope acquiring name on every use.
func (r *recorder) create(name string) usable.Usable[*resource] {
	return usable.Create(func() (*resource, error) {
		return r.open(name), nil
	}, (*resource).Close)
}

type resource struct {
	name     string
	rec      *recorder
	closes   int
	closeErr error
}

func (res *resource) Close() error {
	res.closes++
	res.rec.add("release " + res.name)
	return res.closeErr
}

func wantEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// mustPanic runs f and returns the recovered value.
func mustPanic(t *testing.T, f func()) (r any) {
	t.Helper()
	defer func() {
		r = recover()
		if r == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
	return nil
}
