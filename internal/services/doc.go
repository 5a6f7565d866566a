// Package services holds the orchestration layer between the HTTP
// transport and the pipeline/analytics packages. The analysis service
// owns the canonical table snapshot: it runs the cleaning pipeline
// once, hands the resulting table to an Analyzer, and serves both to
// concurrent readers behind a read-write lock. Reload swaps the whole
// snapshot atomically.
package services
