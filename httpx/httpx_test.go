package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/mapper"
	"dirpx.dev/tryx/xid"
)

func testMapper(t *testing.T) apis.Mapper {
	t.Helper()
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	return m
}

func TestWriter_Write(t *testing.T) {
	th := tryx.New()
	var ex *tryx.Exception
	th.Try(func(*tryx.Frame) {
		tryx.Throw(th, xid.IONotFound, tryx.WithPayloadOption("missing.txt"))
	}).CatchAny(func(e *tryx.Exception) {
		ex = e
	}).Run()
	if ex == nil {
		t.Fatal("no exception caught")
	}

	rec := httptest.NewRecorder()
	Writer{Mapper: testMapper(t)}.Write(rec, ex)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}

	var view apis.ExceptionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad body: %v\n%s", err, rec.Body.String())
	}
	if view.ID != int32(xid.IONotFound) {
		t.Fatalf("view.ID = %d, want %d", view.ID, int32(xid.IONotFound))
	}
	if view.Hex != "0x102" {
		t.Fatalf("view.Hex = %q, want 0x102", view.Hex)
	}
	if view.Payload != "missing.txt" {
		t.Fatalf("view.Payload = %v, want missing.txt", view.Payload)
	}
	if view.File == "" || view.Line == 0 {
		t.Fatalf("view must record the throw site; got %q:%d", view.File, view.Line)
	}
}

func TestWriter_NilException(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{Mapper: testMapper(t)}.Write(rec, nil)
	if rec.Body.Len() != 0 {
		t.Fatalf("nil exception must write nothing; got %q", rec.Body.String())
	}
}

func TestWriter_UnencodablePayload(t *testing.T) {
	ex := &tryx.Exception{ID: xid.InternalError, Payload: make(chan int)}
	rec := httptest.NewRecorder()
	Writer{Mapper: testMapper(t)}.Write(rec, ex)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var view apis.ExceptionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("body must degrade to valid JSON: %v", err)
	}
	if view.Payload != nil {
		t.Fatalf("unencodable payload must be dropped; got %v", view.Payload)
	}
}

func TestRecoverer_ThrowBecomesResponse(t *testing.T) {
	h := Recoverer(testMapper(t), http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		tryx.Throw(tryx.FromContext(r.Context()), xid.ArgInvalid, tryx.WithPayloadOption("name is required"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var view apis.ExceptionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if view.ID != int32(xid.ArgInvalid) {
		t.Fatalf("view.ID = %d, want %d", view.ID, int32(xid.ArgInvalid))
	}
}

func TestRecoverer_CleanRequestUntouched(t *testing.T) {
	h := Recoverer(testMapper(t), http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if tryx.FromContext(r.Context()) == nil {
			t.Error("handler must see a thread in its context")
		}
		rw.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("clean request must not get an error body; got %q", rec.Body.String())
	}
}

func TestRecoverer_CaughtInsideHandlerStaysInside(t *testing.T) {
	h := Recoverer(testMapper(t), http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		th := tryx.FromContext(r.Context())
		th.Try(func(*tryx.Frame) {
			tryx.Throw(th, xid.StateConflict)
		}).Catch(xid.StateConflict, func(*tryx.Exception) {
			rw.WriteHeader(http.StatusAccepted)
		}).Run()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/widgets", nil))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
}
