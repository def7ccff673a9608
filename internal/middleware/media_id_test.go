package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lcabrel/medialib-go/internal/appctx"
)

func TestWithMediaIDMiddleware(t *testing.T) {
	mw := WithMediaID()

	tests := []struct {
		name           string
		paramValue     string // what chi.URLParam(r, "id") returns
		wantStatus     int
		expectNextCall bool // if the next handler should run
		wantInternal   uint64
		wantExternal   string
	}{
		{"missing param", "", http.StatusBadRequest, false, 0, ""},
		{"garbage param", "not-an-id", http.StatusBadRequest, false, 0, ""},
		{"numeric id", "42", http.StatusNoContent, true, 42, ""},
		{"external uuid", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", http.StatusNoContent, true, 0, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// dummy handler that records if it's called
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := appctx.MediaIDFromContext(r.Context()); ok {
					w.Header().Set("X-ID", strconv.FormatUint(id, 10))
				}
				if ext, ok := appctx.ExternalIDFromContext(r.Context()); ok {
					w.Header().Set("X-External-ID", ext)
				}
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest("GET", "/any", nil)
			// inject chi URLParam
			rctx := chi.NewRouteContext()
			if tc.paramValue != "" {
				rctx.URLParams.Add("id", tc.paramValue)
			}
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()

			handler := mw(next)
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.expectNextCall {
				t.Errorf("nextCalled = %v; want %v", nextCalled, tc.expectNextCall)
			}
			if tc.wantInternal != 0 {
				if got := rec.Header().Get("X-ID"); got != strconv.FormatUint(tc.wantInternal, 10) {
					t.Errorf("internal ID in context = %q; want %d", got, tc.wantInternal)
				}
			}
			if tc.wantExternal != "" {
				if got := rec.Header().Get("X-External-ID"); got != tc.wantExternal {
					t.Errorf("external ID in context = %q; want %q", got, tc.wantExternal)
				}
			}
		})
	}
}
