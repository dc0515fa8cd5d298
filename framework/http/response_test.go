package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gohttp "github.com/km-arc/go-hr/framework/http"
	"github.com/km-arc/go-hr/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	if m := decodeJSON(t, rr); m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"role": "Manager"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	data, ok := decodeJSON(t, rr)["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data envelope")
	}
	if data["role"] != "Manager" {
		t.Errorf("data.role: got %v want Manager", data["role"])
	}
}

func TestResponse_Created(t *testing.T) {
	res, rr := newResponse(t)
	res.Created(map[string]any{"total": 45000})

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d want 201", rr.Code)
	}
	if _, ok := decodeJSON(t, rr)["data"]; !ok {
		t.Error("expected 'data' key in response")
	}
}

func TestResponse_NoContent(t *testing.T) {
	res, rr := newResponse(t)
	res.NoContent()

	if rr.Code != http.StatusNoContent {
		t.Errorf("status: got %d want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
}

// ── Error helpers ─────────────────────────────────────────────────────────────

func TestResponse_ErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*gohttp.Response)
		status  int
		message string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusConflict, "taken") }, http.StatusConflict, "taken"},
		{"BadRequest", func(r *gohttp.Response) { r.BadRequest() }, http.StatusBadRequest, "Bad request."},
		{"NotFound default", func(r *gohttp.Response) { r.NotFound() }, http.StatusNotFound, "Not found."},
		{"NotFound custom", func(r *gohttp.Response) { r.NotFound(`unknown role "ceo"`) }, http.StatusNotFound, `unknown role "ceo"`},
		{"Unprocessable", func(r *gohttp.Response) { r.Unprocessable() }, http.StatusUnprocessableEntity, "The given data was invalid."},
		{"ServerError", func(r *gohttp.Response) { r.ServerError() }, http.StatusInternalServerError, "Server Error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.call(res)

			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.message {
				t.Errorf("message: got %v want %q", m["message"], tt.message)
			}
		})
	}
}

// ── ValidationError ───────────────────────────────────────────────────────────

func TestResponse_ValidationError(t *testing.T) {
	res, rr := newResponse(t)

	v := validation.Make(
		map[string]string{"salary": "abc"},
		validation.Rules{"salary": "required|numeric"},
	)
	_ = v.Fails()
	res.ValidationError(v.Errors())

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Errors["salary"]; !ok {
		t.Error("expected 'salary' key in errors")
	}
}

func TestResponse_Raw(t *testing.T) {
	res, rr := newResponse(t)
	if res.Raw() != rr {
		t.Error("Raw() should return the wrapped writer")
	}
}
