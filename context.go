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

import "context"

// threadKey is the private context key for a request-scoped Thread.
type threadKey struct{}

// NewContext returns a context carrying th. Transport adapters use this to
// hand the per-request Thread to handler code, which retrieves it with
// FromContext and throws on it.
func NewContext(ctx context.Context, th *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, th)
}

// FromContext returns the Thread stored in ctx, or nil when none is there.
//
// The Thread travels with the request's goroutine, not with the context
// value itself: handing the context to another goroutine does not make the
// Thread safe to use there.
func FromContext(ctx context.Context) *Thread {
	th, _ := ctx.Value(threadKey{}).(*Thread)
	return th
}
