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

// unwind is the marker the runtime panics with to transfer control to the
// innermost open frame. It is recovered only by the frame driver whose frame
// is the current stack top on the owning Thread; everything else re-panics
// it, and panics that are not *unwind pass through the runtime untouched.
type unwind struct {
	thread *Thread
}

func (u *unwind) String() string {
	return fmt.Sprintf("tryx: unwinding %s", u.thread.Current())
}

// Throw throws the exception identified by id on the given Thread. It never
// returns: control transfers to the innermost open frame's catch dispatch,
// or to the terminate handler when no frame is open.
//
// The id must not be the reserved sentinel; throwing xid.None is a
// programmer error and panics. The throw site is recorded automatically;
// use options to attach a payload or override the origin.
func Throw(th *Thread, id xid.ID, opts ...Option) {
	if th == nil {
		panic("tryx: Throw on nil Thread")
	}
	if id == xid.None {
		panic("tryx: Throw of reserved id 0")
	}
	e := &Exception{Loc: caller(1), ID: id}
	for _, opt := range opts {
		e = opt(e)
	}
	th.current = *e
	th.raise()
}

// Rethrow rethrows the Thread's current exception: same identifier, same
// payload, origin updated to the rethrow site. With no exception in flight
// it behaves exactly like Terminate. It never returns.
//
// Rethrowing from a catch body propagates the exception outward (the
// same-level recatch guard keeps the enclosing block from re-catching the
// same id). Rethrowing from a finally body resumes at the parent frame,
// since the current frame has already been popped by then.
func Rethrow(th *Thread) {
	if th == nil {
		panic("tryx: Rethrow on nil Thread")
	}
	if th.Current() == nil {
		Terminate(th)
	}
	th.current.Loc = caller(1)
	th.raise()
}

// raise transfers control to the innermost open frame, or terminates when
// none is open. The current record must already be in place.
func (th *Thread) raise() {
	if th.top == nil {
		Terminate(th)
	}
	th.top.state = stateThrown
	th.top.thrownID = th.current.ID
	panic(&unwind{thread: th})
}

// Terminate invokes the current terminate handler with the Thread's current
// exception record (nil when none is in flight). Handlers must not return;
// if one does, Terminate panics so the contract violation is loud instead
// of undefined.
func Terminate(th *Thread) {
	var e *Exception
	if th != nil {
		e = th.Current()
	}
	handler()(e)
	panic("tryx: terminate handler returned")
}
