package health

import "context"

// Status represents the aggregated readiness status.
type Status string

const (
	// Healthy indicates all dependencies are reachable.
	Healthy Status = "ok"
	// Degraded indicates at least one dependency failed its check.
	Degraded Status = "degraded"
)

// CheckResult represents an individual dependency check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates readiness check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates readiness checks.
type Service struct {
	backend BackendChecker
}

// New creates a Service. backend can be nil, in which case the report is always healthy.
func New(backend BackendChecker) *Service {
	return &Service{backend: backend}
}

// Check runs the backend probe.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.backend != nil {
		if err := s.backend.HealthCheck(ctx); err != nil {
			checks["tei"] = CheckError
		} else {
			checks["tei"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
