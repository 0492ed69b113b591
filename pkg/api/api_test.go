package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/dropline/pkg/errors"
	"github.com/matzehuels/dropline/pkg/pedigree/layout"
	"github.com/matzehuels/dropline/pkg/storage"
)

const coupleJSON = `{
	"individuals": [
		{"id": "H", "name": "Husband", "sex": "M"},
		{"id": "W", "name": "Wife", "sex": "F"},
		{"id": "C", "name": "Child", "sex": "M"}
	],
	"families": [{"husband": "H", "wife": "W", "children": ["C"]}]
}`

func newTestServer(t *testing.T, withStore bool) http.Handler {
	t.Helper()
	var store storage.Store
	if withStore {
		fs, err := storage.NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		store = fs
	}
	return New(nil, store, nil, layout.DefaultOptions()).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLayout(t *testing.T) {
	h := newTestServer(t, false)
	body := `{"chart": ` + coupleJSON + `, "options": {"formats": ["json", "dot"]}}`

	rec := do(t, h, http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp LayoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Layout.Placements) != 3 {
		t.Errorf("placements = %d, want 3", len(resp.Layout.Placements))
	}
	if resp.Layout.Source != "auto" {
		t.Errorf("source = %q, want auto", resp.Layout.Source)
	}
	if !strings.HasPrefix(resp.Artifacts["dot"], "digraph G {") {
		t.Errorf("dot artifact = %q", resp.Artifacts["dot"])
	}
	if _, ok := resp.Artifacts["json"]; ok {
		t.Error("json format should not be repeated in artifacts")
	}
}

func TestLayoutErrors(t *testing.T) {
	h := newTestServer(t, false)
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", `{"chart":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"chart": ` + coupleJSON + `, "extra": 1}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"empty chart", `{"chart": {"individuals": []}}`, http.StatusBadRequest, errors.ErrCodeInvalidChart},
		{"duplicate id", `{"chart": {"individuals": [{"id": "A"}, {"id": "A"}]}}`, http.StatusBadRequest, errors.ErrCodeInvalidChart},
		{"bad format", `{"chart": ` + coupleJSON + `, "options": {"formats": ["pdf"]}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestChartsLifecycle(t *testing.T) {
	h := newTestServer(t, true)

	rec := do(t, h, http.MethodPost, "/v1/charts", `{"name": "Doe", "chart": `+coupleJSON+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created CreateChartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create returned empty id")
	}

	rec = do(t, h, http.MethodGet, "/v1/charts/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var stored storage.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.Name != "Doe" || len(stored.Layout.Placements) != 3 {
		t.Errorf("stored = %+v", stored)
	}

	rec = do(t, h, http.MethodGet, "/v1/charts", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), created.ID) {
		t.Errorf("list = %d %s, want the created id", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodDelete, "/v1/charts/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/v1/charts/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != errors.ErrCodeChartNotFound {
		t.Errorf("code = %s, want CHART_NOT_FOUND", got)
	}
}

func TestChartsWithoutStore(t *testing.T) {
	h := newTestServer(t, false)
	rec := do(t, h, http.MethodGet, "/v1/charts/6f1c2a8e-93a4-4a57-8f8e-0d5a6f0b1c2d", "")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestGetChartInvalidID(t *testing.T) {
	h := newTestServer(t, true)
	rec := do(t, h, http.MethodGet, "/v1/charts/nope", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestNotFoundRoute(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/v2/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != errors.ErrCodeNotFound {
		t.Errorf("code = %s, want NOT_FOUND", got)
	}
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	h := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", bytes.NewBufferString(`{"chart": `+coupleJSON+`}`))
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
