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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/xid"
)

type httpGroupRule struct {
	// group is the identifier with only its family bits set (member bits zero
	// under mask). Validated when the mapper is built.
	group xid.ID
	// mask selects the bits that define the family. Zero means xid.GroupMask.
	mask xid.ID
	// status is the HTTP status applied when a thrown identifier falls into
	// this family and no exact rule exists for it.
	status int
}

type grpcGroupRule struct {
	group xid.ID
	mask  xid.ID
	code  codes.Code
}

type builder struct {
	// user-provided adjustments (applied on top of library defaults)

	// httpExact holds per-identifier HTTP statuses. Seeded from library
	// defaults and then overridden by options.
	httpExact map[xid.ID]int
	// grpcExact holds per-identifier gRPC statuses as ints; converted to
	// codes.Code in New().
	grpcExact map[xid.ID]int

	// httpGroups and grpcGroups hold family-level rules, consulted when no
	// exact rule matches. Declaration order breaks specificity ties.
	httpGroups []httpGroupRule
	grpcGroups []grpcGroupRule

	// global fallbacks used when an identifier matches nothing at all.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		httpExact: make(map[xid.ID]int, len(defaultHTTP)),
		grpcExact: make(map[xid.ID]int, len(defaultGRPC)),

		// group rules are usually few
		httpGroups: make([]httpGroupRule, 0, len(defaultHTTPGroups)),
		grpcGroups: make([]grpcGroupRule, 0, len(defaultGRPCGroups)),

		// hard fallbacks if the identifier was never seen
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
