// Copyright 2024 Crown Copyright (Ministry of Justice)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compile

import "github.com/opentracing/opentracing-go"

// startSpan starts a span named op under tracer, or returns nil when
// tracer is nil so that tracing stays fully optional (SPEC_FULL.md §A:
// a host that never configures a tracer should see no behavioural
// difference).
func startSpan(tracer opentracing.Tracer, op string) opentracing.Span {
	if tracer == nil {
		return nil
	}
	return tracer.StartSpan(op)
}

func finishSpan(span opentracing.Span) {
	if span == nil {
		return
	}
	span.Finish()
}
