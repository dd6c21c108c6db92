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
	"runtime"

	"dirpx.dev/tryx/xid"
)

// Location is the source position an exception was thrown from. The zero
// Location means "no position" and, on a Thread's current record, "no
// exception in flight".
type Location struct {
	// File is the source file of the throw site.
	File string

	// Line is the line number within File.
	Line int
}

// Here captures the caller's source position. Throw records its caller
// automatically; Here is for callers that want to pin the origin somewhere
// else (see WithLocationOption).
func Here() Location {
	return caller(1)
}

// caller returns the position skip+1 frames above caller itself.
func caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line}
}

// IsZero reports whether the Location carries no position.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String renders the conventional "file:line" form.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Exception is the record describing an in-flight exception.
//
// It carries:
//   - Loc: where the exception was thrown from;
//   - ID: the numeric identifier that catch clauses match on (never
//     xid.None on a live record);
//   - Payload: optional opaque user data attached at the throw site.
//
// One record lives on each Thread; it is overwritten on every throw and
// cleared when the frame that caught it fully exits with nothing left to
// rethrow. Mutation helpers (WithX) return a shallow copy, so records read
// out of a Thread can be decorated without touching the live one.
type Exception struct {
	// Loc is the origin of the throw.
	Loc Location

	// ID is the thrown identifier.
	ID xid.ID

	// Payload is the optional opaque value supplied at the throw site.
	// The runtime never inspects it.
	Payload any
}

// String renders the record the way the default terminate diagnostic does:
//
//	"file.go:12: exception 257 (0x101)"
func (e *Exception) String() string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s: exception %s", e.Loc, e.ID)
}

// WithPayload returns a shallow copy of e with the given payload attached.
// The original record is not modified.
func (e *Exception) WithPayload(v any) *Exception {
	cp := *e
	cp.Payload = v
	return &cp
}

// WithLocation returns a shallow copy of e with a replaced origin.
func (e *Exception) WithLocation(loc Location) *Exception {
	cp := *e
	cp.Loc = loc
	return &cp
}
