package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Option configures the scheduler.
type Option func(*Service)

// WithFatigueFactors sets explicit fatigue factors, one per worker.
func WithFatigueFactors(factors ...float64) Option {
	return func(s *Service) {
		s.factors = append([]float64(nil), factors...)
	}
}

// WithLogger sets the logger used for fire-and-forget task failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegisterer registers scheduler metrics with registerer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = registerer
	}
}
