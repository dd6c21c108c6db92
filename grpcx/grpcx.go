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

package grpcx

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that gives
// every call its own tryx.Thread and converts exceptions escaping the
// handler into gRPC status errors with a structured detail.
//
// The handler retrieves its thread with tryx.FromContext and is free to
// open nested blocks on it; an exception no block catches lands here
// instead of reaching the terminate handler.
//
// The provided apis.Mapper resolves exception identifiers into transport
// status codes.
func UnaryServerInterceptor(m apis.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		th := tryx.New()
		ctx = tryx.NewContext(ctx, th)

		var (
			resp any
			err  error
			ex   *tryx.Exception
		)
		th.Try(func(*tryx.Frame) {
			resp, err = handler(ctx, req)
		}).CatchAny(func(e *tryx.Exception) {
			ex = e
		}).Run()

		if ex == nil {
			// Handler completed; plain errors pass through untouched.
			return resp, err
		}
		return nil, StatusError(m, ex)
	}
}

// StatusError converts a caught exception into a gRPC status error. The
// exception identifier, its mapped statuses, the throw site, and the user
// payload travel as a google.protobuf.Struct detail.
func StatusError(m apis.Mapper, ex *tryx.Exception) error {
	st := m.Status(ex.ID)
	base := gstatus.New(st.GRPC, fmt.Sprintf("unhandled exception %s", ex.ID))

	// Try to attach the detail. If it fails — return base.
	if with, err := base.WithDetails(describe(ex, st)); err == nil {
		return with.Err()
	}
	return base.Err()
}

// describe renders the exception as a structpb.Struct detail.
func describe(ex *tryx.Exception, st apis.Status) *structpb.Struct {
	fields := map[string]*structpb.Value{
		// Core identity.
		"id":  structpb.NewNumberValue(float64(int32(ex.ID))),
		"hex": structpb.NewStringValue(fmt.Sprintf("%#x", uint32(ex.ID))),

		// Transport projections.
		"http_status": structpb.NewNumberValue(float64(st.HTTP)),
		"grpc_code":   structpb.NewNumberValue(float64(st.GRPC)),
	}

	if !ex.Loc.IsZero() {
		fields["file"] = structpb.NewStringValue(ex.Loc.File)
		fields["line"] = structpb.NewNumberValue(float64(ex.Loc.Line))
	}

	// The payload is attached only when it survives the Value conversion;
	// an unencodable payload drops silently rather than failing the call.
	if ex.Payload != nil {
		if v, err := structpb.NewValue(ex.Payload); err == nil {
			fields["user_data"] = v
		}
	}

	return &structpb.Struct{Fields: fields}
}

// ExtractDetail pulls the exception detail out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractDetail(err error) (*structpb.Struct, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if s, ok := d.(*structpb.Struct); ok {
			return s, true
		}
	}
	return nil, false
}
