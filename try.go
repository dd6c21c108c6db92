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

import "dirpx.dev/tryx/xid"

// clause is one declared catch clause of a block.
type clause struct {
	// id is the identifier the clause catches; xid.Any for a catch-all.
	id xid.ID

	// fn is the clause body, handed the record that was caught.
	fn func(*Exception)
}

// Block is a try/catch/finally block under construction. Build it fluently
// and finish with Run:
//
//	th.Try(func(f *tryx.Frame) {
//	    mightThrow(th)
//	}).Catch(xid.IONotFound, func(ex *tryx.Exception) {
//	    // handle the specific case
//	}).CatchAny(func(ex *tryx.Exception) {
//	    // handle everything else
//	}).Finally(func() {
//	    // always runs
//	}).Run()
//
// Catch clauses are evaluated in declared order and at most one runs. The
// finally body runs exactly once on every path except explicit
// cancellation. An exception no clause accepts propagates to the enclosing
// Run after the finally body, and to the terminate handler at top level.
type Block struct {
	th      *Thread
	body    func(*Frame)
	clauses []clause
	finally func()
}

// Try opens a block around the given body on this Thread. The body receives
// the block's Frame solely so it can Cancel for an early exit; most bodies
// ignore it. Nothing executes until Run.
func (th *Thread) Try(body func(*Frame)) *Block {
	return &Block{th: th, body: body}
}

// Catch appends a clause catching the given identifier (as decided by the
// process-wide matcher). Declaration order is evaluation order.
func (b *Block) Catch(id xid.ID, fn func(*Exception)) *Block {
	b.clauses = append(b.clauses, clause{id: id, fn: fn})
	return b
}

// CatchAny appends a clause catching every identifier, like C++'s
// `catch (...)`. Place it last; clauses after it can only run when the
// recatch guard suppresses it.
func (b *Block) CatchAny(fn func(*Exception)) *Block {
	b.clauses = append(b.clauses, clause{id: xid.Any, fn: fn})
	return b
}

// Finally sets the block's finally body. At most one; later calls replace
// earlier ones.
func (b *Block) Finally(fn func()) *Block {
	b.finally = fn
	return b
}

// Run executes the block: try body, catch dispatch, finally, propagation.
// It returns normally when the block completes or was cancelled; it does
// not return when an uncaught exception propagates to an enclosing block
// (control transfers there) or terminates the process.
func (b *Block) Run() {
	f := NewFrame(b.th, caller(1))
	for f.Advance() {
		if f.state != stateFinally {
			b.dispatch(f)
			if f.cancelled {
				return
			}
		} else if b.finally != nil {
			b.finally()
		}
	}
}

// dispatch runs the try body and then, for as long as throws keep landing
// on this frame, re-evaluates the catch chain. The re-evaluation mirrors
// the re-entry semantics of the underlying jump primitive: a catch body
// that throws a different identifier gives sibling clauses a chance, while
// the frame's recatch guard stops a same-identifier loop.
func (b *Block) dispatch(f *Frame) {
	landed := b.attempt(f, func() { b.body(f) })
	for landed {
		landed = b.attempt(f, func() { b.selectClause(f) })
	}
}

// attempt executes fn under this frame's recovery boundary. It reports
// whether an unwind landed here: the panic was the runtime's marker, for
// this Thread, while this frame is the stack top. Everything else —
// foreign panics, unwinds bound for other threads or for enclosing frames —
// continues to propagate.
func (b *Block) attempt(f *Frame, fn func()) (landed bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(*unwind)
		if !ok || u.thread != b.th || b.th.top != f {
			panic(r)
		}
		landed = true
	}()
	fn()
	return false
}

// selectClause tries the declared clauses in order against the exception
// that landed on f and runs the first that matches. No match is normal
// flow: the exception stays on the frame and propagates after finally.
func (b *Block) selectClause(f *Frame) {
	for _, c := range b.clauses {
		var ok bool
		if c.id == xid.Any {
			ok = f.CatchMatchAny()
		} else {
			ok = f.CatchMatch(c.id)
		}
		if ok {
			c.fn(b.th.Current())
			return
		}
	}
}
