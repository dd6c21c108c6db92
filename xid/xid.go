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

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID is the canonical, validated representation of an exception identifier.
//
// It is defined as a separate type (not just int32) so that throw sites and
// catch clauses explicitly declare which values they expect and to avoid
// accidental mixing of raw integers with exception identifiers.
//
// IMPORTANT: The zero value is NOT a throwable identifier. It is the reserved
// sentinel (see None / Any below).
type ID int32

const (
	// None is the reserved "no exception" sentinel. An exception record whose
	// identifier is None means no exception is in flight. Throwing None is a
	// programmer error and panics.
	None ID = 0

	// Any is the reserved "match any" sentinel for catch clauses. A catch
	// clause declared with Any accepts every thrown identifier, like the C++
	// `catch (...)` does.
	//
	// Any and None are the same value on purpose: the sentinel means "absent"
	// when stored and "wildcard" when matched against.
	Any ID = None
)

// GroupMask is the conventional mask separating an identifier's group (high
// bits) from its member number (low byte).
//
// The grouping convention: identifiers that share their high bits belong to
// one family, and the identifier whose low byte is zero names the family
// itself. For example, with the I/O group 0x0100:
//
//	0x0100  the whole I/O group
//	0x0101  I/O error
//	0x0102  file not found
//
// A grouping matcher (see tryx/match) uses this mask to let a catch clause
// written against 0x0100 accept any of them.
const GroupMask ID = ^ID(0) &^ 0xFF

var (
	// ErrInvalid is returned when a value cannot be parsed or validated as an
	// exception identifier.
	//
	// Having a dedicated sentinel error makes it easy for callers and tests
	// to detect "this is about id format" vs some other failure.
	ErrInvalid = errors.New("xid: invalid id")
)

// Ensure ID implements encoding.TextMarshaler / encoding.TextUnmarshaler so
// it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*ID)(nil)
	_ encoding.TextUnmarshaler = (*ID)(nil)
)

// Parse takes a user-provided string and validates it as an identifier.
// Both decimal ("257") and hexadecimal ("0x0101") forms are accepted.
// The sentinel value 0 is rejected: it is not a parseable identifier.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return None, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	id := ID(n)
	if err := Validate(id); err != nil {
		return None, err
	}
	return id, nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level constants in init() or var blocks.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate checks whether the provided ID is a throwable identifier.
// The sentinel (None / Any) is considered invalid.
func Validate(id ID) error {
	if id == None {
		return fmt.Errorf("%w: reserved sentinel 0", ErrInvalid)
	}
	return nil
}

// String renders the identifier in both decimal and hexadecimal, matching
// the form used by the default terminate diagnostic:
//
//	"257 (0x101)"
func (id ID) String() string {
	return fmt.Sprintf("%d (%#x)", int32(id), uint32(id))
}

// Group returns the group portion of the identifier under the given mask.
// With a zero mask, GroupMask is used.
func (id ID) Group(mask ID) ID {
	if mask == 0 {
		mask = GroupMask
	}
	return id & mask
}

// In reports whether the identifier belongs to the given group under the
// given mask. With a zero mask, GroupMask is used.
func (id ID) In(group, mask ID) bool {
	if mask == 0 {
		mask = GroupMask
	}
	return id&mask == group&mask
}

// MarshalText implements encoding.TextMarshaler.
//
// The canonical text form is hexadecimal ("0x101") since identifiers are
// grouped by their high bits and hex keeps the grouping visible.
func (id ID) MarshalText() ([]byte, error) {
	if err := Validate(id); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%#x", uint32(id))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It accepts anything Parse accepts.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
