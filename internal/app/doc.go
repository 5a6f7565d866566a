// Package app wires the analysis server together: configuration,
// logging, OpenTelemetry, the cleaning pipeline, the analysis service
// and the chi router, plus the server lifecycle with graceful shutdown.
package app
