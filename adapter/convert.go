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

// Package adapter bridges exceptions and Go error values, for code that
// sits between throwing components and error-returning ones.
package adapter

import (
	"errors"
	"fmt"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/xid"
)

// ThrownError is a caught exception frozen into a Go error value. It keeps
// the identifier, the throw site, and the payload, so the exception can be
// re-raised later without losing information (see Throw).
type ThrownError struct {
	ex tryx.Exception
}

var (
	_ error           = (*ThrownError)(nil)
	_ apis.Identified = (*ThrownError)(nil)
	_ apis.Payloaded  = (*ThrownError)(nil)
)

func (e *ThrownError) Error() string {
	return e.ex.String()
}

// ExceptionID returns the thrown identifier.
func (e *ThrownError) ExceptionID() int32 {
	return int32(e.ex.ID)
}

// UserData returns the payload attached at the throw site.
func (e *ThrownError) UserData() any {
	return e.ex.Payload
}

// Exception returns a copy of the frozen record.
func (e *ThrownError) Exception() *tryx.Exception {
	cp := e.ex
	return &cp
}

// ToError freezes a caught exception into an error for code that speaks
// error returns. A nil exception yields a nil error.
func ToError(ex *tryx.Exception) error {
	if ex == nil {
		return nil
	}
	return &ThrownError{ex: *ex}
}

// FromError recovers the frozen exception from an error produced by
// ToError, unwrapping as needed.
func FromError(err error) (*tryx.Exception, bool) {
	var te *ThrownError
	if errors.As(err, &te) {
		return te.Exception(), true
	}
	return nil, false
}

// Throw raises err as an exception on th. An error holding a frozen
// exception is re-raised with its original identifier, origin, and
// payload; any other error is raised as xid.InternalError carrying err
// as the payload. A nil err does nothing.
func Throw(th *tryx.Thread, err error) {
	if err == nil {
		return
	}
	if ex, ok := FromError(err); ok {
		tryx.Throw(th, ex.ID,
			tryx.WithLocationOption(ex.Loc),
			tryx.WithPayloadOption(ex.Payload))
		return
	}
	tryx.Throw(th, xid.InternalError, tryx.WithPayloadOption(err))
}

// ToView converts a caught exception into a public ExceptionView using the
// same shape the HTTP layer serializes. This function performs no redaction
// or filtering; it exposes exactly what the record contains.
func ToView(ex *tryx.Exception) apis.ExceptionView {
	if ex == nil {
		return apis.ExceptionView{}
	}
	v := apis.ExceptionView{
		ID:      int32(ex.ID),
		Hex:     fmt.Sprintf("%#x", uint32(ex.ID)),
		Payload: ex.Payload,
	}
	if !ex.Loc.IsZero() {
		v.File = ex.Loc.File
		v.Line = ex.Loc.Line
	}
	return v
}
