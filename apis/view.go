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

// ExceptionView is the flat, transport-friendly projection of an exception
// record that adapters expose to clients and logs.
//
// This type intentionally uses plain strings and ints (not the internal
// Location / xid.ID value types) so that it can live in the public "apis"
// layer, serialize cleanly to JSON, and be consumed by user code without
// importing the runtime.
type ExceptionView struct {
	// ID is the thrown identifier in decimal.
	ID int32 `json:"id"`

	// Hex is the identifier in hexadecimal ("0x101"), kept alongside the
	// decimal form because identifier groups are defined on hex digits and
	// operators grep logs for the hex form.
	Hex string `json:"hex"`

	// File is the source file of the throw site. Adapters MAY blank this
	// for external clients; the view carries what the record carries.
	File string `json:"file,omitempty"`

	// Line is the line number within File.
	Line int `json:"line,omitempty"`

	// Payload is the opaque user data attached at the throw site, if it is
	// representable in the adapter's encoding. Adapters drop payloads they
	// cannot encode rather than failing the response.
	Payload any `json:"payload,omitempty"`
}

// Identified is implemented by values that carry an exception identifier,
// such as adapter-produced errors. Transport code can act on the identifier
// without importing the concrete type.
type Identified interface {
	// ExceptionID returns the numeric identifier. It MUST be non-zero.
	ExceptionID() int32
}

// Payloaded is implemented by values that expose the opaque payload a throw
// site attached. Returning nil means "no payload".
type Payloaded interface {
	// UserData returns the payload. May return nil.
	UserData() any
}
