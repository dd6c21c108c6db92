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
	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/xid"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTP sets or replaces the HTTP status for the given identifier.
// Exact rules take precedence over group rules.
func WithHTTP(id xid.ID, status int) Option {
	return func(b *builder) { b.httpExact[id] = status }
}

// WithGRPC sets or replaces the gRPC status for the given identifier.
// Exact rules take precedence over group rules.
func WithGRPC(id xid.ID, code codes.Code) Option {
	return func(b *builder) { b.grpcExact[id] = int(code) }
}

// WithGroupHTTP adds an HTTP family rule: any identifier whose masked bits
// equal group resolves to status, unless an exact rule exists for it.
// A zero mask means xid.GroupMask. A more specific mask (more bits kept)
// wins over a less specific one.
func WithGroupHTTP(group, mask xid.ID, status int) Option {
	return func(b *builder) {
		b.httpGroups = append(b.httpGroups, httpGroupRule{group: group, mask: mask, status: status})
	}
}

// WithGroupGRPC adds a gRPC family rule with the same matching behavior
// as WithGroupHTTP.
func WithGroupGRPC(group, mask xid.ID, code codes.Code) Option {
	return func(b *builder) {
		b.grpcGroups = append(b.grpcGroups, grpcGroupRule{group: group, mask: mask, code: code})
	}
}

// WithFallbackHTTP replaces the HTTP status used when no rule covers an
// identifier. The library default is 500.
func WithFallbackHTTP(status int) Option {
	return func(b *builder) { b.fallbackHTTP = status }
}

// WithFallbackGRPC replaces the gRPC status used when no rule covers an
// identifier. The library default is codes.Internal.
func WithFallbackGRPC(code codes.Code) Option {
	return func(b *builder) { b.fallbackGRPC = code }
}
