package engine

import "github.com/sirupsen/logrus"

// Option configures the engine.
type Option func(*Service)

// WithLogger sets the engine logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
