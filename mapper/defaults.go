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

// defaultHTTP defines the library's built-in HTTP mappings for well-known
// member identifiers. These are only defaults: callers are expected to
// override them at the boundary where HTTP is actually produced.
var defaultHTTP = map[xid.ID]int{
	// I/O members with an obvious HTTP shape.
	xid.IONotFound:   http.StatusNotFound,       // The target of the operation does not exist.
	xid.IOPermission: http.StatusForbidden,      // Access control refused the operation.
	xid.IOTimeout:    http.StatusGatewayTimeout, // Time budget exceeded talking to a dependency.

	// State members.
	xid.StateConflict: http.StatusConflict,           // Concurrent modification clash.
	xid.StateBusy:     http.StatusServiceUnavailable, // Temporarily unable to accept work.

	// Argument members: the caller must fix the request.
	xid.ArgInvalid: http.StatusBadRequest,
	xid.ArgMissing: http.StatusBadRequest,

	// Resource members.
	xid.ResourceExhausted: http.StatusTooManyRequests,
}

// defaultGRPC defines the library's built-in gRPC mappings for well-known
// member identifiers, chosen to align with canonical gRPC status semantics.
var defaultGRPC = map[xid.ID]codes.Code{
	xid.IONotFound:   codes.NotFound,
	xid.IOPermission: codes.PermissionDenied,
	xid.IOTimeout:    codes.DeadlineExceeded,

	xid.StateConflict: codes.Aborted,
	xid.StateBusy:     codes.Unavailable,

	xid.ArgInvalid: codes.InvalidArgument,
	xid.ArgMissing: codes.InvalidArgument,

	xid.ResourceExhausted: codes.ResourceExhausted,
}

// defaultHTTPGroups and defaultGRPCGroups define the built-in group rules,
// applied when no exact rule matches: members not listed in the maps above
// land on their family's entry.
var defaultHTTPGroups = []httpGroupRule{
	{group: xid.IOAny, mask: xid.GroupMask, status: http.StatusBadGateway},
	{group: xid.StateAny, mask: xid.GroupMask, status: http.StatusConflict},
	{group: xid.ArgAny, mask: xid.GroupMask, status: http.StatusBadRequest},
	{group: xid.ResourceAny, mask: xid.GroupMask, status: http.StatusTooManyRequests},
	{group: xid.InternalAny, mask: xid.GroupMask, status: http.StatusInternalServerError},
}

var defaultGRPCGroups = []grpcGroupRule{
	{group: xid.IOAny, mask: xid.GroupMask, code: codes.Unavailable},
	{group: xid.StateAny, mask: xid.GroupMask, code: codes.FailedPrecondition},
	{group: xid.ArgAny, mask: xid.GroupMask, code: codes.InvalidArgument},
	{group: xid.ResourceAny, mask: xid.GroupMask, code: codes.ResourceExhausted},
	{group: xid.InternalAny, mask: xid.GroupMask, code: codes.Internal},
}
