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

// Package match provides ready-made matchers for tryx catch clauses.
//
// The runtime's default matcher is identifier equality. Since numeric
// identifiers have no inheritance, grouping is the substitute for exception
// hierarchies: identifiers that share their high bits form a family, and a
// grouping matcher lets one catch clause accept the whole family.
//
// Install a matcher once at startup:
//
//	tryx.SetMatcher(match.Group(xid.GroupMask))
//
// or scope it to a test with the set-returns-old idiom:
//
//	old := tryx.SetMatcher(match.Group(xid.GroupMask))
//	defer tryx.SetMatcher(old)
package match

import (
	"dirpx.dev/tryx"
	"dirpx.dev/tryx/xid"
)

// Exact matches identifiers by equality. It is the same policy the runtime
// uses when no matcher is installed; it exists so callers can name it in
// FirstOf chains or restore it explicitly.
func Exact(thrownID, catchID xid.ID) bool {
	return thrownID == catchID
}

// Group returns a matcher implementing the grouping convention under the
// given mask: a catch identifier whose member bits (the bits outside the
// mask) are all zero names a whole group and accepts any thrown identifier
// in that group; any other catch identifier requires an exact match.
//
// With mask xid.GroupMask, a clause for 0x0100 catches 0x0101, 0x0102, …,
// while a clause for 0x0101 still catches only 0x0101.
//
// A zero mask means xid.GroupMask.
func Group(mask xid.ID) tryx.Matcher {
	if mask == 0 {
		mask = xid.GroupMask
	}
	return func(thrownID, catchID xid.ID) bool {
		if catchID&^mask == 0 {
			thrownID &= mask
		}
		return thrownID == catchID
	}
}

// Mask returns a matcher that compares identifiers only under the given
// mask: thrown and catch identifiers match when their masked bits agree.
// Unlike Group, every clause is a group clause.
func Mask(mask xid.ID) tryx.Matcher {
	return func(thrownID, catchID xid.ID) bool {
		return thrownID&mask == catchID&mask
	}
}

// FirstOf returns a matcher that accepts when any of the given matchers
// accepts, tried in order.
func FirstOf(ms ...tryx.Matcher) tryx.Matcher {
	return func(thrownID, catchID xid.ID) bool {
		for _, m := range ms {
			if m(thrownID, catchID) {
				return true
			}
		}
		return false
	}
}
