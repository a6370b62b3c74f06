package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the report is not being served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	session SessionChecker
	db      DBPinger
}

// New creates a Service. db can be nil when records come from a file.
func New(session SessionChecker, db DBPinger) *Service {
	return &Service{session: session, db: db}
}

// Check runs health checks against all components.
// An uninitialized session is unhealthy; a failing record store only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.session.Initialized() {
		checks["session"] = CheckOK
	} else {
		checks["session"] = CheckError
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["records"] = CheckError
		} else {
			checks["records"] = CheckOK
		}
	}

	status := Healthy
	if checks["session"] == CheckError {
		status = Unhealthy
	} else if checks["records"] == CheckError {
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
