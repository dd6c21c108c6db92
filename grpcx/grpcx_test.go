package grpcx

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

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

func invoke(t *testing.T, m apis.Mapper, h grpc.UnaryHandler) (any, error) {
	t.Helper()
	ic := UnaryServerInterceptor(m)
	return ic(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test.Files/Open"}, h)
}

func TestInterceptor_NoThrow(t *testing.T) {
	var sawThread bool
	resp, err := invoke(t, testMapper(t), func(ctx context.Context, req any) (any, error) {
		sawThread = tryx.FromContext(ctx) != nil
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("resp = %v, want ok", resp)
	}
	if !sawThread {
		t.Fatal("handler must see a thread in its context")
	}
}

func TestInterceptor_PlainErrorPassesThrough(t *testing.T) {
	want := errors.New("boom")
	_, err := invoke(t, testMapper(t), func(ctx context.Context, req any) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("plain error must pass through; got %v", err)
	}
}

func TestInterceptor_ThrowBecomesStatus(t *testing.T) {
	resp, err := invoke(t, testMapper(t), func(ctx context.Context, req any) (any, error) {
		tryx.Throw(tryx.FromContext(ctx), xid.IONotFound, tryx.WithPayloadOption("missing.txt"))
		return "unreachable", nil
	})
	if resp != nil {
		t.Fatalf("resp must be nil after a throw; got %v", resp)
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		t.Fatalf("want a status error, got %v", err)
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.NotFound)
	}
	if !strings.Contains(st.Message(), "0x102") {
		t.Fatalf("message must carry the identifier: %q", st.Message())
	}

	detail, ok := ExtractDetail(err)
	if !ok {
		t.Fatal("status must carry an exception detail")
	}
	if got := detail.Fields["id"].GetNumberValue(); got != float64(int32(xid.IONotFound)) {
		t.Fatalf("detail id = %v, want %d", got, int32(xid.IONotFound))
	}
	if got := detail.Fields["http_status"].GetNumberValue(); got != 404 {
		t.Fatalf("detail http_status = %v, want 404", got)
	}
	if got := detail.Fields["user_data"].GetStringValue(); got != "missing.txt" {
		t.Fatalf("detail user_data = %q, want missing.txt", got)
	}
	if detail.Fields["file"].GetStringValue() == "" {
		t.Fatal("detail must record the throw site")
	}
}

func TestInterceptor_NestedCatchStaysInHandler(t *testing.T) {
	resp, err := invoke(t, testMapper(t), func(ctx context.Context, req any) (any, error) {
		th := tryx.FromContext(ctx)
		var caught bool
		th.Try(func(*tryx.Frame) {
			tryx.Throw(th, xid.StateBusy)
		}).Catch(xid.StateBusy, func(*tryx.Exception) {
			caught = true
		}).Run()
		if !caught {
			t.Error("handler block must catch its own exception")
		}
		return "handled", nil
	})
	if err != nil {
		t.Fatalf("caught exception must not surface: %v", err)
	}
	if resp != "handled" {
		t.Fatalf("resp = %v, want handled", resp)
	}
}

func TestStatusError_UnencodablePayloadDrops(t *testing.T) {
	ex := &tryx.Exception{ID: xid.InternalError, Payload: make(chan int)}
	err := StatusError(testMapper(t), ex)

	st, ok := gstatus.FromError(err)
	if !ok {
		t.Fatalf("want a status error, got %v", err)
	}
	if st.Code() != codes.Internal {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.Internal)
	}
	detail, ok := ExtractDetail(err)
	if !ok {
		t.Fatal("detail must still be attached")
	}
	if _, present := detail.Fields["user_data"]; present {
		t.Fatal("unencodable payload must be dropped, not fail the call")
	}
}
