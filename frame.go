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

	"dirpx.dev/tryx/xid"
)

// state is the position of a Frame in its lifecycle.
type state uint8

const (
	stateInit    state = iota // constructed, not yet entered
	stateTry     state = iota // try body running, no throw seen
	stateThrown  state = iota // exception landed here, not yet caught
	stateCaught  state = iota // a catch clause accepted the exception
	stateFinally state = iota // finally body running, frame already popped
	stateDone    state = iota // completed or cancelled
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateTry:
		return "try"
	case stateThrown:
		return "thrown"
	case stateCaught:
		return "caught"
	case stateFinally:
		return "finally"
	case stateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// advanceLimit is the number of Advance calls a well-formed block makes:
// enter, finalize, exit. A fourth call means control escaped the block by an
// unsanctioned path and is a programmer error.
const advanceLimit = 3

// Frame is the per-scope control block of one try/catch/finally block.
//
// A Frame is owned by the lexical scope that opens the block: the scope
// constructs it, drives it with Advance, and abandons it exactly once —
// either by letting Advance run to completion or by calling Cancel. A Frame
// never outlives its scope and is never reused.
//
// Most code never touches Frame directly; the Try construct (see try.go)
// drives it. The type and its driver operations are exported for alternative
// surface constructs that want the raw state machine.
type Frame struct {
	// th is the Thread whose frame stack this frame lives on.
	th *Thread

	// loc is where the block was opened; used in misuse diagnostics.
	loc Location

	// parent is the enclosing open frame at push time, or nil.
	parent *Frame

	// state is the current lifecycle position.
	state state

	// thrownID is the identifier that landed on this frame, or xid.None.
	thrownID xid.ID

	// caughtID is the identifier most recently accepted by a catch clause
	// on this frame, or xid.None. It backs the same-level recatch guard.
	caughtID xid.ID

	// advances counts Advance calls to detect illegal control escapes.
	advances int

	// cancelled marks a frame abandoned via Cancel.
	cancelled bool
}

// NewFrame constructs a fresh frame for a block opened at loc on the given
// Thread. The frame starts in its initial state and is not yet on the frame
// stack; the first Advance pushes it.
func NewFrame(th *Thread, loc Location) *Frame {
	if th == nil {
		panic("tryx: NewFrame on nil Thread")
	}
	return &Frame{th: th, loc: loc}
}

// Advance drives the frame's state machine one step and reports whether the
// next block body should execute. The enclosing construct calls it in a
// loop: the first call enters the block (run the try body and catch
// dispatch), the second finalizes it (run the finally body), and the third
// exits — rethrowing to the parent frame if an uncaught exception remains,
// or clearing the Thread's record if this frame had absorbed one.
//
// A fourth call panics: a well-formed block advances exactly three times,
// and more means control escaped the block without going through Cancel.
func (f *Frame) Advance() bool {
	f.advances++
	if f.advances > advanceLimit {
		panic(fmt.Sprintf("tryx: block at %s advanced %d times; control escaped the block (use Cancel for early exit)",
			f.loc, f.advances))
	}

	switch f.state {
	case stateInit:
		f.th.push(f)
		f.state = stateTry
		return true

	case stateCaught:
		// A caught-and-not-rethrown id must not trip the rethrow check
		// below once we reach the finally step.
		f.thrownID = xid.None
		fallthrough

	case stateTry, stateThrown:
		// Pop before the finally body runs: a throw issued inside finally
		// must land at the parent frame, not back here.
		f.th.pop()
		f.state = stateFinally
		return true

	case stateFinally:
		if f.thrownID != xid.None {
			f.state = stateDone
			f.th.raise() // never returns
		}
		if f.caughtID != xid.None {
			// This frame absorbed the exception; the record dies with it.
			f.th.clear()
		}
		f.state = stateDone
		return false
	}

	panic(fmt.Sprintf("tryx: Advance on %s frame at %s", f.state, f.loc))
}

// CatchMatch evaluates a catch clause declared with the given identifier
// against the exception that landed on this frame. Valid only while the
// frame holds an uncaught exception; calling it in any other state is a
// programmer error and panics.
//
// The same-level recatch guard comes first: if this frame already caught
// the identifier that is now thrown, the clause never matches, so a catch
// body rethrowing the id it just caught propagates outward instead of
// looping. The xid.Any sentinel matches everything; any other identifier is
// decided by the process-wide matcher.
//
// On a match the frame records the catch and returns true (run the clause
// body); otherwise the state is left untouched so the next clause in the
// block can be tried.
func (f *Frame) CatchMatch(id xid.ID) bool {
	if f.state != stateThrown {
		panic(fmt.Sprintf("tryx: CatchMatch on %s frame at %s", f.state, f.loc))
	}
	if f.caughtID != xid.None && f.caughtID == f.thrownID {
		return false
	}
	if id != xid.Any && !matcher()(f.thrownID, id) {
		return false
	}
	f.state = stateCaught
	f.caughtID = f.thrownID
	return true
}

// CatchMatchAny evaluates a match-any catch clause. Identical to CatchMatch
// with the xid.Any sentinel.
func (f *Frame) CatchMatchAny() bool {
	return f.CatchMatch(xid.Any)
}

// Cancel abandons a still-open block so its scope can leave by an early
// return. If the frame is the current stack top it is popped immediately;
// the finally body and any pending rethrow are skipped. This is the only
// sanctioned way out of a block other than completing the Advance loop.
//
// Cancelling a frame that is not the stack top does nothing.
func (f *Frame) Cancel() {
	if f.th.top != f {
		return
	}
	f.th.pop()
	f.cancelled = true
	f.state = stateDone
}

// Cancelled reports whether the frame was abandoned via Cancel.
func (f *Frame) Cancelled() bool {
	return f.cancelled
}
