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
	"fmt"
	"math/bits"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/xid"
)

// New constructs an immutable apis.Mapper snapshot.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived reuse.
// Each build creates a self-contained mapper instance: no shared references
// to global state or user-provided structures remain.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC, exact and group).
//  2. Apply user-provided options (exact rules, group rules, fallbacks).
//  3. Validate every rule (identifiers, group/mask alignment, status ranges).
//  4. Freeze all maps and rule lists into immutable copies (fresh allocations).
//
// Errors returned from this function indicate invalid identifiers or rule
// configurations discovered during validation.
func New(opts ...Option) (apis.Mapper, error) {
	// (0) Start with an empty builder.
	// We do not assume any pre-seeded state.
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	// Copy into builder-owned maps to prevent external mutation.
	for k, v := range defaultHTTP {
		b.httpExact[k] = v
	}
	for k, v := range defaultGRPC {
		// Keep values as int for internal uniformity;
		// convert to codes.Code when freezing the final snapshot.
		b.grpcExact[k] = int(v)
	}
	b.httpGroups = append(b.httpGroups, defaultHTTPGroups...)
	b.grpcGroups = append(b.grpcGroups, defaultGRPCGroups...)

	// (2) Apply user-supplied options (exact rules, group rules, fallbacks).
	for _, opt := range opts {
		opt(b)
	}

	// (3) Validate exact rules.
	for id, v := range b.httpExact {
		if id == xid.None {
			return nil, fmt.Errorf("mapper: HTTP rule for the reserved identifier 0")
		}
		if !validHTTPStatus(v) {
			return nil, fmt.Errorf("mapper: invalid HTTP status %d for %s", v, id)
		}
	}
	for id := range b.grpcExact {
		if id == xid.None {
			return nil, fmt.Errorf("mapper: gRPC rule for the reserved identifier 0")
		}
	}
	if !validHTTPStatus(b.fallbackHTTP) {
		return nil, fmt.Errorf("mapper: invalid fallback HTTP status %d", b.fallbackHTTP)
	}

	// (4) Validate and normalize group rules. A zero mask means the
	// library-wide xid.GroupMask; the group must not carry bits outside
	// its mask, otherwise no identifier could ever fall into it.
	httpGroups := make([]httpGroupRule, len(b.httpGroups))
	for i, r := range b.httpGroups {
		if r.mask == 0 {
			r.mask = xid.GroupMask
		}
		if err := validateGroup(r.group, r.mask); err != nil {
			return nil, fmt.Errorf("mapper: invalid HTTP group rule %s: %w", r.group, err)
		}
		if !validHTTPStatus(r.status) {
			return nil, fmt.Errorf("mapper: invalid HTTP status %d for group %s", r.status, r.group)
		}
		httpGroups[i] = r
	}
	grpcGroups := make([]grpcGroupRule, len(b.grpcGroups))
	for i, r := range b.grpcGroups {
		if r.mask == 0 {
			r.mask = xid.GroupMask
		}
		if err := validateGroup(r.group, r.mask); err != nil {
			return nil, fmt.Errorf("mapper: invalid gRPC group rule %s: %w", r.group, err)
		}
		grpcGroups[i] = r
	}

	// (5) Freeze everything into a read-only snapshot.
	// Each map and slice is freshly allocated.
	m := &mapper{
		httpExact:  freezeHTTPExact(b.httpExact),
		grpcExact:  freezeGRPCExact(b.grpcExact),
		httpGroups: httpGroups,
		grpcGroups: grpcGroups,

		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}

	return m, nil
}

// mapper is an immutable mapper implementation that combines exact
// per-identifier rules, family-level group rules, and global fallbacks.
// Lookups are O(rules) and safe for concurrent use once constructed.
type mapper struct {
	// httpExact holds the HTTP status for specific identifiers.
	// These take precedence over group rules.
	httpExact map[xid.ID]int

	// grpcExact holds the gRPC status for specific identifiers.
	grpcExact map[xid.ID]codes.Code

	// httpGroups holds family rules for HTTP, consulted in specificity
	// order: the rule whose mask keeps the most bits wins, declaration
	// order breaks ties.
	httpGroups []httpGroupRule

	// grpcGroups holds family rules for gRPC.
	grpcGroups []grpcGroupRule

	// fallbackHTTP is used when no rule covers the identifier at all.
	// Typically http.StatusInternalServerError.
	fallbackHTTP int

	// fallbackGRPC is used when no rule covers the identifier at all.
	// Typically codes.Internal.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given identifier.
//
// Resolution order (highest to lowest):
//  1. exact per-identifier rule;
//  2. most-specific matching group rule (widest mask, declaration order ties);
//  3. configured fallback.
func (m *mapper) HTTPStatus(id xid.ID) int {
	// 1. Fast path: exact rule for this identifier.
	if v, ok := m.httpExact[id]; ok {
		return v
	}

	// 2. Most-specific group rule.
	if i := bestHTTPGroup(m.httpGroups, id); i >= 0 {
		return m.httpGroups[i].status
	}

	// 3. Ultimate fallback: HTTP must never be zero.
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status for the given identifier.
// Uses the same precedence as HTTPStatus, but returns gRPC codes.
func (m *mapper) GRPCStatus(id xid.ID) codes.Code {
	// 1. Exact rule.
	if v, ok := m.grpcExact[id]; ok {
		return v
	}

	// 2. Most-specific group rule.
	if i := bestGRPCGroup(m.grpcGroups, id); i >= 0 {
		return m.grpcGroups[i].code
	}

	// 3. Ultimate fallback.
	return m.fallbackGRPC
}

// Status resolves both HTTP and gRPC for the same identifier.
// This keeps HTTP/gRPC decisions consistent for a single exception.
func (m *mapper) Status(id xid.ID) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(id),
		GRPC: m.GRPCStatus(id),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular identifier.
//
// This is primarily a diagnostic tool: it shows which tier matched
// (exact, group, or fallback) and, for group matches, which rule was used.
//
// Example output:
//
//	id=258 (0x102)
//	http: source=exact -> 404
//	grpc: source=group group=0x100 mask=0xffffff00 -> UNAVAILABLE(14)
//
// Notes:
//   - source ∈ {exact | group | fallback}
//   - group and mask are printed in hex, as they were stored in the rule
func (m *mapper) Explain(id xid.ID) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "id=%s\n", id)

	// ---- HTTP ----
	switch src, httpLine := m.explainHTTP(id); src {
	case "exact", "group", "fallback":
		_, _ = fmt.Fprintln(&b, httpLine)
	default:
		_, _ = fmt.Fprintln(&b, "http: source=unknown")
	}

	// ---- gRPC ----
	switch src, grpcLine := m.explainGRPC(id); src {
	case "exact", "group", "fallback":
		_, _ = fmt.Fprintln(&b, grpcLine)
	default:
		_, _ = fmt.Fprintln(&b, "grpc: source=unknown")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// explainHTTP returns the origin ("exact", "group", "fallback") and a
// formatted line describing how the HTTP status was chosen.
func (m *mapper) explainHTTP(id xid.ID) (source, line string) {
	// 1) exact per-identifier rule
	if v, ok := m.httpExact[id]; ok {
		return "exact", fmt.Sprintf("http: source=exact -> %d", v)
	}

	// 2) most-specific group rule
	if i := bestHTTPGroup(m.httpGroups, id); i >= 0 {
		r := m.httpGroups[i]
		return "group", fmt.Sprintf("http: source=group group=%#x mask=%#x -> %d",
			uint32(r.group), uint32(r.mask), r.status)
	}

	// 3) global fallback
	return "fallback", fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

// explainGRPC returns the origin ("exact", "group", "fallback") and a
// formatted line describing how the gRPC status was chosen.
func (m *mapper) explainGRPC(id xid.ID) (source, line string) {
	// 1) exact per-identifier rule
	if v, ok := m.grpcExact[id]; ok {
		return "exact", fmt.Sprintf("grpc: source=exact -> %s(%d)", strings.ToUpper(v.String()), int(v))
	}

	// 2) most-specific group rule
	if i := bestGRPCGroup(m.grpcGroups, id); i >= 0 {
		r := m.grpcGroups[i]
		return "group", fmt.Sprintf("grpc: source=group group=%#x mask=%#x -> %s(%d)",
			uint32(r.group), uint32(r.mask), strings.ToUpper(r.code.String()), int(r.code))
	}

	// 3) global fallback
	return "fallback", fmt.Sprintf("grpc: source=fallback -> %s(%d)",
		strings.ToUpper(m.fallbackGRPC.String()), int(m.fallbackGRPC))
}

// bestHTTPGroup returns the index of the most specific HTTP group rule
// covering id, or -1. Specificity is the number of bits the mask keeps;
// on a tie, the earlier declaration wins.
func bestHTTPGroup(rules []httpGroupRule, id xid.ID) int {
	best, bestBits := -1, -1
	for i, r := range rules {
		if id&r.mask != r.group {
			continue
		}
		if n := bits.OnesCount32(uint32(r.mask)); n > bestBits {
			best, bestBits = i, n
		}
	}
	return best
}

// bestGRPCGroup is the gRPC counterpart of bestHTTPGroup.
func bestGRPCGroup(rules []grpcGroupRule, id xid.ID) int {
	best, bestBits := -1, -1
	for i, r := range rules {
		if id&r.mask != r.group {
			continue
		}
		if n := bits.OnesCount32(uint32(r.mask)); n > bestBits {
			best, bestBits = i, n
		}
	}
	return best
}

// validateGroup checks that a group/mask pair is well-formed: the mask must
// keep at least one bit and the group must not set bits the mask discards.
func validateGroup(group, mask xid.ID) error {
	if mask == 0 {
		return fmt.Errorf("empty mask")
	}
	if group&^mask != 0 {
		return fmt.Errorf("group %#x has bits outside mask %#x", uint32(group), uint32(mask))
	}
	return nil
}

// validHTTPStatus reports whether v is a plausible HTTP status code.
func validHTTPStatus(v int) bool {
	return v >= 100 && v <= 599
}
