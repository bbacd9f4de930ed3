// Package api serves hemicycle charts over HTTP.
//
// # Endpoints
//
//	POST /v1/charts           compute a chart, respond with its JSON document
//	POST /v1/charts/{format}  compute a chart, respond with an export (json, xlsx, dxf)
//	GET  /healthz             liveness probe
//
// Both chart endpoints take the same body:
//
//	{"scale": 100, "groups": [{"label": "A", "num_seats": 12}]}
//
// The scale may be omitted, in which case the server's default applies.
// Responses carry X-Request-ID (echoed from the request or freshly generated)
// and X-Cache, which is "hit" when the chart was served from the cache.
//
// Failures are reported as
//
//	{"error": {"code": "INVALID_SCALE", "message": "scale must be positive, got 0"}}
//
// with a status derived from the error code (see [HTTPStatus]).
package api
