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

// Package mapper resolves exception identifiers into transport statuses.
//
// An uncaught exception that reaches a process boundary must turn into
// *something* a client understands: an HTTP status, a gRPC code. The mapper
// is the single place that policy lives. It is built once from options and
// frozen; the resulting apis.Mapper is immutable and safe for concurrent
// use by every interceptor and middleware in the process.
//
// Resolution order for an identifier:
//
//  1. an exact rule for the identifier itself;
//  2. the most specific matching group rule (the rule whose mask has the
//     most set bits, declaration order breaking ties);
//  3. the configured fallback.
//
// The library ships defaults for the well-known identifier groups in
// tryx/xid, so a mapper built with no options is already usable:
//
//	m, err := mapper.New()
//
// Overrides and additional rules are supplied as options:
//
//	m, err := mapper.New(
//	    mapper.WithHTTP(myID, http.StatusTeapot),
//	    mapper.WithGroupGRPC(0x4200, xid.GroupMask, codes.Unavailable),
//	)
package mapper
