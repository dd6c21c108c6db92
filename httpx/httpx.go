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

package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
)

// Writer is a thin adapter that knows how to turn a caught exception into an
// HTTP response using the provided status mapper.
type Writer struct {
	Mapper apis.Mapper
}

// Write serializes an apis.ExceptionView and writes it to the response
// writer. The HTTP status is resolved via the Mapper.
//
// No automatic redaction or filtering is performed here: whatever payload
// the exception carries is exposed as-is. Higher-level handlers should
// apply policies if needed.
func (w Writer) Write(rw http.ResponseWriter, ex *tryx.Exception) {
	if ex == nil {
		return
	}

	st := w.Mapper.Status(ex.ID)

	view := apis.ExceptionView{
		ID:      int32(ex.ID),
		Hex:     fmt.Sprintf("%#x", uint32(ex.ID)),
		Payload: ex.Payload,
	}
	if !ex.Loc.IsZero() {
		view.File = ex.Loc.File
		view.Line = ex.Loc.Line
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(st.HTTP)

	b, err := json.Marshal(view)
	if err != nil {
		// Unencodable payload: keep the identity fields and drop the rest.
		view.Payload = nil
		b, _ = json.Marshal(view)
	}
	_, _ = rw.Write(b)
}

// Recoverer wraps next so that every request runs with its own tryx.Thread,
// retrievable via tryx.FromContext. An exception no block in the handler
// catches is rendered as a JSON response instead of reaching the terminate
// handler.
//
// If the handler has already written a response body before throwing, the
// status line cannot be replaced; exceptions should be thrown before any
// output is produced.
func Recoverer(m apis.Mapper, next http.Handler) http.Handler {
	w := Writer{Mapper: m}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		th := tryx.New()
		r = r.WithContext(tryx.NewContext(r.Context(), th))

		var ex *tryx.Exception
		th.Try(func(*tryx.Frame) {
			next.ServeHTTP(rw, r)
		}).CatchAny(func(e *tryx.Exception) {
			ex = e
		}).Run()

		if ex != nil {
			w.Write(rw, ex)
		}
	})
}
