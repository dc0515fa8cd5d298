// Package http provides request and response helpers for the JSON API.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    Name   string `json:"name"`
//	    Salary string `json:"salary"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	kind := req.RouteParam("type") // chi route parameter
//	page := req.Query("page", "1")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//
//	res.BadRequest("bad input")   // 400 {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.Unprocessable(msg)        // 422 {"message": msg}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
//	res.ServerError()             // 500 {"message": "Server Error."}
package http
