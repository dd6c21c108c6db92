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

package apis

import (
	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/xid"
)

// Mapper is an immutable, concurrency-safe view of the mapping rules that
// resolve an exception identifier into transport statuses for HTTP and gRPC.
type Mapper interface {
	// HTTPStatus returns the HTTP status code for the given identifier.
	// If no exact rule exists, the mapper must fall back to the group-level
	// rule, then to its configured fallback.
	HTTPStatus(id xid.ID) int

	// GRPCStatus returns the gRPC status code for the given identifier,
	// with the same fallback behavior as HTTPStatus.
	GRPCStatus(id xid.ID) codes.Code

	// Status resolves both HTTP and gRPC in a single call, using the same
	// matching logic.
	Status(id xid.ID) Status

	// Explain returns a human-readable description of which rule matched.
	// Implementations may return an empty string in production builds.
	Explain(id xid.ID) string
}

// Status represents a resolved pair of transport statuses for a single
// exception. It is the final output of the mapper and can be written
// directly to HTTP/gRPC.
type Status struct {
	HTTP int        // Resolved HTTP status code (net/http compatible).
	GRPC codes.Code // Resolved gRPC status code.
}
