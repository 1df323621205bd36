/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package anim drives the post-generation glow: a short ramp up and a long
// ease back down, one full render per frame, ending on a settled glow=0 frame.
package anim

import (
	"log/slog"
	"time"

	applog "gosigil/internal/log"
)

const (
	DefaultDuration = 800 * time.Millisecond
	// rampUp is the share of the duration spent brightening.
	rampUp = 0.15
)

// Glow maps animation progress in [0,1] to glow intensity in [0,1].
func Glow(progress float64) float64 {
	var g float64
	switch {
	case progress <= 0 || progress >= 1:
		return 0
	case progress < rampUp:
		g = progress / rampUp
	default:
		g = 1 - (progress-rampUp)/(1-rampUp)
	}
	return g * g * (3 - 2*g)
}

// Scheduler runs fn on the host's next frame, passing the frame timestamp.
// The returned func cancels the call if it has not run yet.
type Scheduler interface {
	Schedule(fn func(now time.Duration)) (cancel func())
}

// RenderFunc draws one full frame at the given glow.
type RenderFunc func(glow float64) error

type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	if p == Animating {
		return "animating"
	}
	return "idle"
}

// Animator owns at most one glow run. It is not safe for concurrent use; all
// calls are expected on the scheduler's thread.
type Animator struct {
	sched    Scheduler
	render   RenderFunc
	duration time.Duration
	log      *slog.Logger

	phase   Phase
	run     uint64
	cancel  func()
	started bool
	t0      time.Duration
	frames  int
	err     error
}

// Option configures an Animator.
type Option func(*Animator)

// WithDuration overrides the run length; non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.duration = d
		}
	}
}

func New(s Scheduler, render RenderFunc, opts ...Option) *Animator {
	a := &Animator{
		sched:    s,
		render:   render,
		duration: DefaultDuration,
		log:      applog.WithComponent("anim"),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Animator) Phase() Phase            { return a.phase }
func (a *Animator) Duration() time.Duration { return a.duration }

// Err returns the render error that aborted the last run, if any.
func (a *Animator) Err() error { return a.err }

// Start begins a new run from elapsed 0, superseding any run in flight.
func (a *Animator) Start() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
		a.log.Debug("animation superseded", slog.Uint64("run", a.run), slog.Int("frames", a.frames))
	}
	a.run++
	a.phase = Animating
	a.started = false
	a.frames = 0
	a.err = nil
	a.schedule(a.run)
}

// Stop cancels the run in flight without the settling render.
func (a *Animator) Stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.phase = Idle
}

func (a *Animator) schedule(run uint64) {
	a.cancel = a.sched.Schedule(func(now time.Duration) { a.step(run, now) })
}

func (a *Animator) step(run uint64, now time.Duration) {
	if run != a.run || a.phase != Animating {
		return
	}
	a.cancel = nil
	if !a.started {
		a.started = true
		a.t0 = now
	}
	elapsed := now - a.t0
	if elapsed >= a.duration {
		a.finish(a.render(0))
		return
	}
	a.frames++
	if err := a.render(Glow(float64(elapsed) / float64(a.duration))); err != nil {
		a.finish(err)
		return
	}
	a.schedule(run)
}

func (a *Animator) finish(err error) {
	a.phase = Idle
	a.err = err
	if err != nil {
		a.log.Warn("animation aborted", slog.Uint64("run", a.run), slog.Any("err", err))
		return
	}
	a.log.Debug("animation settled", slog.Uint64("run", a.run), slog.Int("frames", a.frames))
}
