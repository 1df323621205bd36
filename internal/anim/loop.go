/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import "time"

// DefaultFPS is the frame rate of a FrameLoop built with a non-positive rate.
const DefaultFPS = 60

// FrameLoop is a single-threaded Scheduler on a virtual clock. Each Tick runs
// the callbacks registered before it at the current time, then advances the
// clock by one frame.
type FrameLoop struct {
	step    time.Duration
	now     time.Duration
	pending []*task
}

type task struct {
	fn       func(time.Duration)
	canceled bool
}

func NewFrameLoop(fps int) *FrameLoop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &FrameLoop{step: time.Second / time.Duration(fps)}
}

func (l *FrameLoop) Schedule(fn func(time.Duration)) func() {
	t := &task{fn: fn}
	l.pending = append(l.pending, t)
	return func() { t.canceled = true }
}

// Now is the timestamp the next Tick hands to its callbacks.
func (l *FrameLoop) Now() time.Duration { return l.now }

// Step is the frame interval.
func (l *FrameLoop) Step() time.Duration { return l.step }

// Pending counts callbacks waiting for a frame, canceled ones excluded.
func (l *FrameLoop) Pending() int {
	n := 0
	for _, t := range l.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Tick runs one frame and reports how many callbacks ran.
func (l *FrameLoop) Tick() int {
	due := l.pending
	l.pending = nil
	ran := 0
	for _, t := range due {
		if t.canceled {
			continue
		}
		t.fn(l.now)
		ran++
	}
	l.now += l.step
	return ran
}

// Drain ticks until nothing is pending or maxFrames ticks have run, and
// returns the number of ticks.
func (l *FrameLoop) Drain(maxFrames int) int {
	n := 0
	for n < maxFrames && l.Pending() > 0 {
		l.Tick()
		n++
	}
	return n
}
