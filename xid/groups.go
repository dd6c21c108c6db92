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

package xid

// Well-known identifier groups
//
// These identifiers describe high-level, transport-agnostic exception classes
// that application code can throw without first defining its own catalogue.
// They follow the grouping convention (high bits = group, low byte = member),
// so a grouping matcher can catch a whole family with one clause.
//
// Applications are free to define their own identifiers; these constants only
// exist so that the library defaults in tryx/mapper have something to map and
// so that small programs need not invent a numbering scheme.

// I/O exceptions — failures talking to files, sockets, or devices.
const (
	// IOAny names the whole I/O group. Catch it (with a grouping matcher)
	// to handle any I/O exception.
	IOAny ID = 0x0100

	// IOError is a generic read/write failure with no more specific member.
	IOError ID = IOAny | 0x01

	// IONotFound indicates the target of the operation does not exist.
	IONotFound ID = IOAny | 0x02

	// IOPermission indicates the operation was refused by access control.
	IOPermission ID = IOAny | 0x03

	// IOTimeout indicates the operation exceeded its time budget.
	IOTimeout ID = IOAny | 0x04
)

// State exceptions — the operation is valid but the object is in the wrong
// state to perform it.
const (
	// StateAny names the whole state group.
	StateAny ID = 0x0200

	// StateConflict indicates a conflicting concurrent update or action.
	StateConflict ID = StateAny | 0x01

	// StateBusy indicates the object is temporarily unable to accept work.
	StateBusy ID = StateAny | 0x02

	// StateClosed indicates use of an object after it was shut down.
	StateClosed ID = StateAny | 0x03
)

// Argument exceptions — the caller supplied bad input.
const (
	// ArgAny names the whole argument group.
	ArgAny ID = 0x0300

	// ArgInvalid indicates a value that violates a structural or semantic
	// invariant (format, range, cross-field consistency).
	ArgInvalid ID = ArgAny | 0x01

	// ArgMissing indicates a required value was absent.
	ArgMissing ID = ArgAny | 0x02
)

// Resource exceptions — limits and exhaustion.
const (
	// ResourceAny names the whole resource group.
	ResourceAny ID = 0x0400

	// ResourceExhausted indicates a quota, rate limit, or pool was exceeded.
	ResourceExhausted ID = ResourceAny | 0x01
)

// Internal exceptions — the "should not happen" family.
const (
	// InternalAny names the whole internal group. It is also the identifier
	// the adapter package throws for plain Go errors that carry no id of
	// their own.
	InternalAny ID = 0x0500

	// InternalError is a generic internal failure.
	InternalError ID = InternalAny | 0x01
)
