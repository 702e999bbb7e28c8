package services

import (
	"log"
	"sync"
	"time"
)

// Overall dashboard statuses.
const (
	StatusUp       = "UP"
	StatusDown     = "DOWN"
	StatusDegraded = "DEGRADED"
	StatusError    = "ERROR"
)

// Prober checks a single liveness endpoint. It returns an error when the
// service could not be reached or answered unhealthily.
type Prober interface {
	Probe(url string) error
}

// ServiceTarget names a service and its liveness endpoint.
type ServiceTarget struct {
	Name string
	URL  string
}

// ServiceHealth is the probe outcome for one service.
type ServiceHealth struct {
	Name    string `json:"name"`
	URL     string `json:"uri"`
	Status  string `json:"status"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Dashboard is the aggregated health view served by the gateway.
type Dashboard struct {
	Timestamp     string                   `json:"timestamp"`
	Gateway       string                   `json:"gateway"`
	Services      map[string]ServiceHealth `json:"services"`
	OverallStatus string                   `json:"overallStatus"`
}

// HealthService polls a fixed set of services and reduces their liveness to
// an overall status. A probe failure becomes a DOWN entry for that service,
// never a propagated error.
type HealthService struct {
	targets []ServiceTarget
	prober  Prober
}

// NewHealthService creates a new HealthService.
func NewHealthService(targets []ServiceTarget, prober Prober) *HealthService {
	return &HealthService{
		targets: targets,
		prober:  prober,
	}
}

// CheckAll probes every target in parallel and assembles the dashboard.
// Overall status is UP when every service is up, DEGRADED when at least one
// is down, and ERROR when no probe could be completed at all.
func (s *HealthService) CheckAll() Dashboard {
	results := make([]ServiceHealth, len(s.targets))

	var wg sync.WaitGroup
	for i, target := range s.targets {
		wg.Add(1)
		go func(i int, target ServiceTarget) {
			defer wg.Done()
			results[i] = s.probeOne(target)
		}(i, target)
	}
	wg.Wait()

	services := make(map[string]ServiceHealth, len(results))
	for _, r := range results {
		services[r.Name] = r
	}

	return Dashboard{
		Timestamp:     time.Now().Format(time.RFC3339),
		Gateway:       StatusUp,
		Services:      services,
		OverallStatus: overallStatus(results),
	}
}

func (s *HealthService) probeOne(target ServiceTarget) ServiceHealth {
	health := ServiceHealth{
		Name: target.Name,
		URL:  target.URL,
	}
	if err := s.prober.Probe(target.URL); err != nil {
		log.Printf("Health probe for %s failed: %v", target.Name, err)
		health.Status = StatusDown
		health.Error = err.Error()
		return health
	}
	health.Status = StatusUp
	health.Healthy = true
	return health
}

func overallStatus(results []ServiceHealth) string {
	if len(results) == 0 {
		return StatusError
	}
	down := 0
	for _, r := range results {
		if !r.Healthy {
			down++
		}
	}
	switch {
	case down == 0:
		return StatusUp
	case down == len(results):
		return StatusError
	default:
		return StatusDegraded
	}
}
