// Package http provides the chi HTTP handlers for the analysis API.
//
// Handlers expose the aggregation queries of the analytics package over
// REST endpoints, render JSON via go-chi/render, and map AppError
// values from the data layers onto the shared API error envelope.
// Query parameters are validated with go-playground/validator before a
// query runs.
package http
