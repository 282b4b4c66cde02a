// Package http implements the HTTP handlers of the comparison API.
//
// Handlers stay thin: they decode and validate requests, call the services
// layer and map results onto the JSON contracts in pkg/contracts/api/v1.
// Errors are rendered as RFC 7807 problems by the shared error handler.
//
//	POST /api/v1/comparisons                     run a comparison
//	GET  /api/v1/comparisons                     list stored comparisons
//	GET  /api/v1/comparisons/{id}                one comparison
//	GET  /api/v1/comparisons/{id}/points         scaled points and histograms
//	GET  /api/v1/comparisons/{id}/unmatched      indices present on one side only
//	GET  /api/v1/comparisons/{id}/export.{fmt}   csv or xlsx download
//	GET  /api/v1/symmetry                        registered Laue classes
package http
