package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/app/controllers"
	"github.com/km-arc/go-hr/app/services"
	"github.com/km-arc/go-hr/framework/metrics"
	"github.com/km-arc/go-hr/framework/routing"
	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
	"github.com/km-arc/go-hr/hr/system"
)

func newRouter(t *testing.T) *routing.Router {
	t.Helper()
	logger := zap.NewNop()
	svc := services.NewHRService(role.NewDefaultRegistry(), bonus.DefaultCatalog(), logger, metrics.New(prometheus.NewRegistry()), 2)
	c := controllers.NewHRController(svc, logger)

	r := routing.New(logger)
	r.Get("/roles", c.Roles)
	r.Get("/roles/{type}", c.ShowRole)
	r.Get("/system", c.System)
	r.Get("/policies", c.Policies)
	r.Post("/salaries", c.StoreSalary)
	return r
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return rr, body
}

func get(t *testing.T, r http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return do(t, r, httptest.NewRequest(http.MethodGet, path, nil))
}

func postJSON(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/salaries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, r, req)
}

func TestRoles(t *testing.T) {
	rr, body := get(t, newRouter(t), "/roles")

	require.Equal(t, http.StatusOK, rr.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{"developer", "intern", "manager"}, data["roles"])
}

func TestShowRole(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		discriminator string
		want          string
	}{
		{"Manager", "Manager"},
		{"developer", "Developer"},
		{"INTERN", "Intern"},
	}
	for _, tt := range tests {
		t.Run(tt.discriminator, func(t *testing.T) {
			rr, body := get(t, r, "/roles/"+tt.discriminator)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, body["data"].(map[string]any)["role"])
		})
	}
}

func TestShowRole_Unknown(t *testing.T) {
	rr, body := get(t, newRouter(t), "/roles/ceo")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, body["message"], "unknown variant")
}

func TestSystem(t *testing.T) {
	rr, body := get(t, newRouter(t), "/system")

	require.Equal(t, http.StatusOK, rr.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, system.DefaultName, data["name"])
	assert.Equal(t, true, data["same_instance"])
}

func TestPolicies(t *testing.T) {
	rr, body := get(t, newRouter(t), "/policies")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"fixed", "percentage"}, body["data"].(map[string]any)["policies"])
}

func TestStoreSalary(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name   string
		body   string
		total  float64
		policy string
	}{
		{"fixed", `{"name":"Rahim","salary":40000,"policy":"fixed"}`, 45000, "fixed(+5000)"},
		{"percentage", `{"name":"Rahim","salary":40000,"policy":"percentage"}`, 44000, "percentage(10%)"},
		{"salary as string", `{"name":"Rahim","salary":"40000","policy":"fixed"}`, 45000, "fixed(+5000)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := postJSON(t, r, tt.body)

			require.Equal(t, http.StatusCreated, rr.Code)
			data := body["data"].(map[string]any)
			assert.Equal(t, "Rahim", data["name"])
			assert.Equal(t, 40000.0, data["salary"])
			assert.InDelta(t, tt.total, data["total"].(float64), 1e-9)
			assert.Equal(t, tt.total, data["total_rounded"])
			assert.Equal(t, tt.policy, data["policy"])
			assert.NotEmpty(t, data["id"])
		})
	}
}

func TestStoreSalary_Form(t *testing.T) {
	form := url.Values{"name": {"Rahim"}, "salary": {"40000"}, "policy": {"percentage"}}
	req := httptest.NewRequest(http.MethodPost, "/salaries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr, body := do(t, newRouter(t), req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.InDelta(t, 44000, body["data"].(map[string]any)["total"].(float64), 1e-9)
}

func TestStoreSalary_ValidationErrors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"salary":40000,"policy":"fixed"}`, "name"},
		{"missing salary", `{"name":"Rahim","policy":"fixed"}`, "salary"},
		{"non-numeric salary", `{"name":"Rahim","salary":"lots","policy":"fixed"}`, "salary"},
		{"negative salary", `{"name":"Rahim","salary":-1,"policy":"fixed"}`, "salary"},
		{"missing policy", `{"name":"Rahim","salary":40000}`, "policy"},
		{"bad policy name", `{"name":"Rahim","salary":40000,"policy":"a b"}`, "policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := postJSON(t, r, tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			errs := body["errors"].(map[string]any)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestStoreSalary_UnknownPolicy(t *testing.T) {
	rr, body := postJSON(t, newRouter(t), `{"name":"Rahim","salary":40000,"policy":"festival"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, body["message"], "unknown policy")
}

func TestStoreSalary_BadJSON(t *testing.T) {
	rr, _ := postJSON(t, newRouter(t), `{nope`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
