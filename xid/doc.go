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

// Package xid provides parsing, validation and formatting for tryx exception
// identifiers.
//
// An exception identifier ("xid") is the numeric classification of a thrown
// exception, such as 0x0101 (an I/O error) or 0x0302 (a missing argument).
// Identifiers are meant to be:
//
//   - small, stable integers;
//   - non-zero — zero is the reserved sentinel;
//   - optionally organized into groups via their high bits, so that a single
//     catch clause (with a grouping matcher installed) can handle a whole
//     family of related exceptions.
//
// IMPORTANT: The zero identifier is reserved. Stored in an exception record
// it means "no exception"; used in a catch clause it means "match any".
// It is never a valid id to throw.
//
// This package defines the canonical representation, the reserved sentinel,
// the grouping convention, and the well-known identifier catalogue used by
// the library defaults in tryx/mapper.
package xid
