// Package validation checks flat string input against pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "name":   "Rahim",
//	    "salary": "40000",
//	}, validation.Rules{
//	    "name":   "required|max:100",
//	    "salary": "required|numeric|gte:0",
//	})
//
//	if v.Fails() {
//	    // JSON: {"errors": {"field": ["message"]}}
//	}
//
// Rules: required, nullable, sometimes, numeric (finite only), integer,
// min:n, max:n (rune counts), in:a,b,c, alpha_dash, regex:pattern,
// gt:n, gte:n, lt:n, lte:n.
//
// Fields are checked in name order and each stops at its first failure.
package validation
