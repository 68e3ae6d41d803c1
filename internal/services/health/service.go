package health

import (
	"context"
	"time"

	"career-coach-backend/internal/generation"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB         Pinger
	Generation *generation.Orchestrator
	Timeout    time.Duration
}

// Status is the health payload.
type Status struct {
	OK         bool             `json:"ok"`
	Database   string           `json:"database"`
	Generation GenerationStatus `json:"generation"`
}

type GenerationStatus struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider"`
}

// NewService constructs a new health service. db may be nil when the
// process runs on in-memory repositories.
func NewService(db Pinger, gen *generation.Orchestrator) *Service {
	return &Service{DB: db, Generation: gen, Timeout: 2 * time.Second}
}

// Status reports database reachability and the generation provider.
// Generation being disabled does not make the service unhealthy.
func (s *Service) Status(ctx context.Context) Status {
	status := Status{
		OK:       true,
		Database: "memory",
		Generation: GenerationStatus{
			Enabled:  s.Generation.Enabled(),
			Provider: s.Generation.Provider(),
		},
	}
	if s.DB == nil {
		return status
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		status.OK = false
		status.Database = "down"
		return status
	}
	status.Database = "up"
	return status
}
