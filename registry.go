/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tryx

import (
	"fmt"
	"os"
	"sync/atomic"

	"dirpx.dev/tryx/xid"
)

// Matcher decides whether a thrown identifier satisfies a catch clause
// declared with catchID. The runtime consults it for every non-wildcard
// clause evaluation. Matchers must be pure: no throwing, no touching the
// Thread.
//
// The default matcher is identifier equality. Grouping and masking
// matchers live in tryx/match.
type Matcher func(thrownID, catchID xid.ID) bool

// TerminateHandler is invoked when an exception escapes all frames, with
// the escaping record (nil when Terminate was called with no exception in
// flight).
//
// Handlers MUST NOT return: they end the process, re-panic, or otherwise
// leave by a non-returning path. A handler that returns makes Terminate
// panic.
type TerminateHandler func(*Exception)

// The process-wide configuration slots. A nil pointer means "default
// installed". The slots are atomics only so that replacement never tears a
// function value; the race between replacing a slot and concurrently
// throwing is still the caller's to avoid — install handlers once at
// startup, before other goroutines run the runtime.
var (
	matcherSlot   atomic.Pointer[Matcher]
	terminateSlot atomic.Pointer[TerminateHandler]
)

// defaultMatcher is identifier equality.
func defaultMatcher(thrownID, catchID xid.ID) bool {
	return thrownID == catchID
}

// defaultTerminate writes the diagnostic (origin, decimal id, hex id) to
// stderr and ends the process with the conventional abort status.
func defaultTerminate(e *Exception) {
	if e != nil {
		fmt.Fprintf(os.Stderr, "%s: unhandled exception %d (%#x)\n",
			e.Loc, int32(e.ID), uint32(e.ID))
	} else {
		fmt.Fprintln(os.Stderr, "unhandled exception")
	}
	os.Exit(134)
}

// GetMatcher returns the installed matcher, or nil when the default is in
// effect.
func GetMatcher() Matcher {
	if p := matcherSlot.Load(); p != nil {
		return *p
	}
	return nil
}

// SetMatcher installs fn as the process-wide matcher and returns the
// previously installed one (nil when the default was in effect). Passing
// nil restores the default. The classic restore idiom:
//
//	old := tryx.SetMatcher(myMatcher)
//	defer tryx.SetMatcher(old)
func SetMatcher(fn Matcher) Matcher {
	var p *Matcher
	if fn != nil {
		p = &fn
	}
	if old := matcherSlot.Swap(p); old != nil {
		return *old
	}
	return nil
}

// GetTerminate returns the installed terminate handler, or nil when the
// default is in effect.
func GetTerminate() TerminateHandler {
	if p := terminateSlot.Load(); p != nil {
		return *p
	}
	return nil
}

// SetTerminate installs fn as the process-wide terminate handler and
// returns the previously installed one (nil when the default was in
// effect). Passing nil restores the default.
func SetTerminate(fn TerminateHandler) TerminateHandler {
	var p *TerminateHandler
	if fn != nil {
		p = &fn
	}
	if old := terminateSlot.Swap(p); old != nil {
		return *old
	}
	return nil
}

// matcher returns the effective matcher, default included.
func matcher() Matcher {
	if p := matcherSlot.Load(); p != nil {
		return *p
	}
	return defaultMatcher
}

// handler returns the effective terminate handler, default included.
func handler() TerminateHandler {
	if p := terminateSlot.Load(); p != nil {
		return *p
	}
	return defaultTerminate
}
