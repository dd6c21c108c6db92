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

// Thread is the per-execution-thread context of the exception runtime: the
// current exception record plus the stack of open try frames, innermost on
// top.
//
// One Thread belongs to exactly one goroutine of execution. It needs no
// locking because it must never be shared: code that spawns a goroutine and
// wants exception handling inside it creates a fresh Thread there. Sharing a
// Thread across goroutines breaks the frame-stack invariant the same way
// sharing a C thread-local would.
//
// The zero Thread is not usable; construct with New.
type Thread struct {
	// current is the in-flight exception record. A zero-Location record
	// means no exception.
	current Exception

	// top is the innermost still-open try frame, or nil outside any block.
	// Frames chain to their parents, forming the LIFO frame stack.
	top *Frame
}

// New constructs a Thread with no exception and no open frames.
func New() *Thread {
	return &Thread{}
}

// Current returns a copy of the live exception record while one is in
// flight, or nil otherwise. Valid to call from catch or finally bodies at
// any nesting depth; it reads the record most recently dispatched on this
// Thread.
func (th *Thread) Current() *Exception {
	if th.current.Loc.IsZero() {
		return nil
	}
	cp := th.current
	return &cp
}

// UserData returns the payload of the current exception, or nil when no
// exception is in flight or none was attached.
func (th *Thread) UserData() any {
	if th.current.Loc.IsZero() {
		return nil
	}
	return th.current.Payload
}

// push makes f the new stack top; the old top becomes f's parent.
func (th *Thread) push(f *Frame) {
	f.parent = th.top
	th.top = f
}

// pop removes the stack top. Panics on an empty stack: the state machine
// never pops more than it pushed unless a frame was driven out of order.
func (th *Thread) pop() {
	if th.top == nil {
		panic("tryx: frame stack underflow")
	}
	th.top = th.top.parent
}

// clear erases the current exception record.
func (th *Thread) clear() {
	th.current = Exception{}
}
