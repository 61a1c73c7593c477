// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	cid := GenerateCorrelationID()
	if len(cid) != 8 {
		t.Errorf("len(correlation id) = %d, want 8", len(cid))
	}
	rid := GenerateRequestID()
	if len(rid) != 36 {
		t.Errorf("len(request id) = %d, want 36", len(rid))
	}
	if GenerateRequestID() == rid {
		t.Error("expected unique request IDs")
	}
}

func TestContextValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if CorrelationIDFromContext(ctx) != "" {
		t.Error("expected empty correlation ID")
	}
	if RequestIDFromContext(ctx) != "" {
		t.Error("expected empty request ID")
	}
	if _, ok := SnapshotFromContext(ctx); ok {
		t.Error("expected no snapshot")
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithSnapshot(ctx, 3)

	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("CorrelationIDFromContext = %q, want %q", got, "abc12345")
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want %q", got, "req-1")
	}
	if v, ok := SnapshotFromContext(ctx); !ok || v != 3 {
		t.Errorf("SnapshotFromContext = %d, %v, want 3, true", v, ok)
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithNewCorrelationID(context.Background())
	if len(CorrelationIDFromContext(ctx)) != 8 {
		t.Errorf("expected generated correlation id, got %q", CorrelationIDFromContext(ctx))
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithCorrelationID(ctx, "corr0001")
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithSnapshot(ctx, 9)

	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	for _, want := range []string{`"correlation_id":"corr0001"`, `"request_id":"req-42"`, `"snapshot":9`, "handled"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestCtx_NoValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	Ctx(ctx).Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "request_id") || strings.Contains(output, "snapshot") {
		t.Errorf("unexpected context fields: %s", output)
	}
}

func TestCtxWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-7")

	logger := CtxWith(ctx).Str("product", "Lamp").Logger()
	logger.Info().Msg("recommend")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-7"`) || !strings.Contains(output, `"product":"Lamp"`) {
		t.Errorf("expected request_id and product fields, got: %s", output)
	}
}
