package adapter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/xid"
)

func catchOne(t *testing.T, th *tryx.Thread, body func(*tryx.Frame)) *tryx.Exception {
	t.Helper()
	var ex *tryx.Exception
	th.Try(body).CatchAny(func(e *tryx.Exception) {
		ex = e
	}).Run()
	if ex == nil {
		t.Fatal("no exception caught")
	}
	return ex
}

func TestToError_RoundTrip(t *testing.T) {
	th := tryx.New()
	ex := catchOne(t, th, func(*tryx.Frame) {
		tryx.Throw(th, xid.IOTimeout, tryx.WithPayloadOption("deadline 5s"))
	})

	err := ToError(ex)
	if err == nil {
		t.Fatal("ToError returned nil for a live record")
	}
	if !strings.Contains(err.Error(), "0x104") {
		t.Fatalf("Error() must carry the identifier: %q", err.Error())
	}

	got, ok := FromError(err)
	if !ok {
		t.Fatal("FromError must recover the record")
	}
	if got.ID != xid.IOTimeout || got.Payload != "deadline 5s" {
		t.Fatalf("recovered record = %+v", got)
	}
	if got.Loc != ex.Loc {
		t.Fatalf("origin must survive: got %v, want %v", got.Loc, ex.Loc)
	}
}

func TestToError_Nil(t *testing.T) {
	if err := ToError(nil); err != nil {
		t.Fatalf("ToError(nil) = %v, want nil", err)
	}
}

func TestFromError_Wrapped(t *testing.T) {
	th := tryx.New()
	ex := catchOne(t, th, func(*tryx.Frame) {
		tryx.Throw(th, xid.StateConflict)
	})

	wrapped := fmt.Errorf("saving widget: %w", ToError(ex))
	got, ok := FromError(wrapped)
	if !ok {
		t.Fatal("FromError must unwrap")
	}
	if got.ID != xid.StateConflict {
		t.Fatalf("got.ID = %s, want %s", got.ID, xid.StateConflict)
	}
}

func TestFromError_Foreign(t *testing.T) {
	if _, ok := FromError(errors.New("boom")); ok {
		t.Fatal("FromError must reject foreign errors")
	}
	if _, ok := FromError(nil); ok {
		t.Fatal("FromError(nil) must report false")
	}
}

func TestThrow_ReRaisesFrozenException(t *testing.T) {
	th := tryx.New()
	orig := catchOne(t, th, func(*tryx.Frame) {
		tryx.Throw(th, xid.IOPermission, tryx.WithPayloadOption("/etc/shadow"))
	})
	err := ToError(orig)

	again := catchOne(t, th, func(*tryx.Frame) {
		Throw(th, err)
	})
	if again.ID != xid.IOPermission {
		t.Fatalf("re-raised ID = %s, want %s", again.ID, xid.IOPermission)
	}
	if again.Payload != "/etc/shadow" {
		t.Fatalf("re-raised payload = %v", again.Payload)
	}
	if again.Loc != orig.Loc {
		t.Fatalf("re-raise must keep the original origin; got %v, want %v", again.Loc, orig.Loc)
	}
}

func TestThrow_PlainErrorBecomesInternal(t *testing.T) {
	th := tryx.New()
	cause := errors.New("disk on fire")

	ex := catchOne(t, th, func(*tryx.Frame) {
		Throw(th, cause)
	})
	if ex.ID != xid.InternalError {
		t.Fatalf("ID = %s, want %s", ex.ID, xid.InternalError)
	}
	if ex.Payload != cause {
		t.Fatalf("payload must be the original error; got %v", ex.Payload)
	}
}

func TestThrow_NilErrIsNoop(t *testing.T) {
	th := tryx.New()
	ran := false
	th.Try(func(*tryx.Frame) {
		Throw(th, nil)
		ran = true
	}).CatchAny(func(*tryx.Exception) {
		t.Error("nil error must not throw")
	}).Run()
	if !ran {
		t.Fatal("body must run to completion")
	}
}

func TestToView(t *testing.T) {
	th := tryx.New()
	ex := catchOne(t, th, func(*tryx.Frame) {
		tryx.Throw(th, xid.ArgMissing, tryx.WithPayloadOption("name"))
	})

	v := ToView(ex)
	if v.ID != int32(xid.ArgMissing) {
		t.Fatalf("v.ID = %d, want %d", v.ID, int32(xid.ArgMissing))
	}
	if v.Hex != "0x302" {
		t.Fatalf("v.Hex = %q, want 0x302", v.Hex)
	}
	if v.Payload != "name" || v.File == "" || v.Line == 0 {
		t.Fatalf("view = %+v", v)
	}

	zero := ToView(nil)
	if zero.ID != 0 || zero.Hex != "" || zero.Payload != nil {
		t.Fatalf("ToView(nil) = %+v, want zero view", zero)
	}
}
