// Package http exposes the shipment use cases as a JSON API on echo.
//
// Requests under /api are validated against the embedded OpenAPI 3 document (openapi.yaml)
// with kin-openapi before they reach a handler, and the same document is served by
// echo-swagger under /swagger/. Handlers return errors; ErrorHandler turns them into
// {"kind", "message"} bodies:
//
//	validation_error, invalid_state_transition -> 400
//	not_found                                  -> 404
//	conflict                                   -> 409
//	dependency_unavailable                     -> 503
//	internal_error                             -> 500
package http
