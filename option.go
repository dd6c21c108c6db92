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

package tryx

// Option is a functional option for decorating the exception record a throw
// constructs. It always takes an *Exception and returns a (possibly new)
// *Exception.
type Option func(*Exception) *Exception

// WithPayloadOption attaches an opaque payload to the thrown exception.
// The catch or finally side reads it back via Thread.UserData. Intended to
// be used with Throw(...).
func WithPayloadOption(v any) Option {
	return func(e *Exception) *Exception {
		return e.WithPayload(v)
	}
}

// WithLocationOption overrides the recorded throw site. Useful for helpers
// that throw on behalf of their caller and want the caller's position
// (captured with Here) in the diagnostic.
func WithLocationOption(loc Location) Option {
	return func(e *Exception) *Exception {
		return e.WithLocation(loc)
	}
}
