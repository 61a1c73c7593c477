// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/storelens/internal/logging"
)

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, `"level":"error"`},
		{"client error", http.StatusNotFound, `"level":"warn"`},
		{"ok", http.StatusOK, `"level":"debug"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			original := logging.Logger()
			logging.SetLogger(logging.NewTestLogger(&buf))
			logging.SetLevelString("debug")
			defer func() {
				logging.SetLogger(original)
				logging.SetLevelString("info")
			}()

			handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/analytics/cohorts/retention", nil))

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("expected %s, got: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, `"path":"/api/v1/analytics/cohorts/retention"`) {
				t.Errorf("expected path field, got: %s", output)
			}
			if !strings.Contains(output, `"request_id":`) {
				t.Errorf("expected request_id from context, got: %s", output)
			}
		})
	}
}
