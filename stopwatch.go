// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package usable

import "time"

// Timer measures elapsed wall time between Start and Stop.
// Readings use the monotonic clock. A Timer is not safe for concurrent use.
type Timer struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// Start starts or resumes measuring. Starting a running timer has no effect.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.start = time.Now()
	t.running = true
}

// Stop stops measuring and accumulates the interval since the last Start.
// Stopping a stopped timer has no effect.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.elapsed += time.Since(t.start)
	t.running = false
}

// Reset stops the timer and clears the accumulated time.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.running = false
}

// Running reports whether the timer is measuring.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the accumulated time, including the current interval
// when the timer is running.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + time.Since(t.start)
	}
	return t.elapsed
}

// Stopwatch returns a scope that times its own body.
//
// Each use creates and starts a fresh [Timer], passes it to the
// continuation, and stops it when the continuation returns or panics.
// The continuation may read Elapsed at any point for a snapshot.
func Stopwatch() Usable[*Timer] {
	return stopwatchUsable{}
}

type stopwatchUsable struct{}

func (stopwatchUsable) Use(k func(*Timer) error) error {
	t := &Timer{}
	t.Start()
	defer t.Stop()
	return k(t)
}
