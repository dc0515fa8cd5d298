package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/km-arc/go-hr/app/services"
	"github.com/km-arc/go-hr/framework/app"
	gohttp "github.com/km-arc/go-hr/framework/http"
	"github.com/km-arc/go-hr/framework/http/validation"
	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
)

// HRController serves the /api/v1 HR endpoints.
type HRController struct {
	app.Controller
	svc    *services.HRService
	logger *zap.Logger
}

func NewHRController(svc *services.HRService, logger *zap.Logger) *HRController {
	return &HRController{svc: svc, logger: logger}
}

// Roles → GET /roles
func (c *HRController) Roles(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(map[string]any{"roles": c.svc.Roles()})
}

// ShowRole → GET /roles/{type}
func (c *HRController) ShowRole(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	discriminator := c.Request(r).RouteParam("type")

	created, err := c.svc.CreateRole(discriminator)
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(map[string]any{
		"type": discriminator,
		"role": created.Label(),
	})
}

// System → GET /system
func (c *HRController) System(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	same, err := c.svc.SameSystem()
	if err != nil {
		c.fail(res, err)
		return
	}
	sys, err := c.svc.System()
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Success(map[string]any{
		"name":          sys.Name(),
		"same_instance": same,
	})
}

// Policies → GET /policies
func (c *HRController) Policies(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(map[string]any{"policies": c.svc.Policies()})
}

type salaryRequest struct {
	Name   string `json:"name"`
	Salary any    `json:"salary"`
	Policy string `json:"policy"`
}

// StoreSalary → POST /salaries
func (c *HRController) StoreSalary(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	var body salaryRequest
	if err := req.Bind(&body); err != nil {
		res.BadRequest(err.Error())
		return
	}

	v := validation.Make(map[string]string{
		"name":   body.Name,
		"salary": stringify(body.Salary),
		"policy": body.Policy,
	}, validation.Rules{
		"name":   "required|max:100",
		"salary": "required|numeric|gte:0",
		"policy": "required|alpha_dash",
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	salary, _ := strconv.ParseFloat(stringify(body.Salary), 64)
	quote, err := c.svc.ComputeSalary(body.Name, salary, body.Policy)
	if err != nil {
		c.fail(res, err)
		return
	}
	res.Created(quote)
}

// fail maps domain errors onto HTTP statuses.
func (c *HRController) fail(res *gohttp.Response, err error) {
	switch {
	case errors.Is(err, role.ErrUnknownVariant), errors.Is(err, bonus.ErrUnknownPolicy):
		res.NotFound(err.Error())
	case errors.Is(err, bonus.ErrInvalidValue):
		res.Unprocessable(err.Error())
	default:
		c.logger.Error("request failed", zap.Error(err))
		res.ServerError()
	}
}

// stringify renders a decoded JSON scalar for validation.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
