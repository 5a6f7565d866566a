package http

import (
	"ogacli/internal/analytics"
	"ogacli/internal/pipeline"
	"ogacli/internal/services"
)

// AnalysisServiceInterface is the handler-facing surface of the
// analysis service.
type AnalysisServiceInterface interface {
	Analyzer() (*analytics.Analyzer, error)
	Result() (*pipeline.Result, error)
	Status() services.Status
}
