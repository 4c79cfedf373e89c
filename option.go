package lae

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/lae/progress"
	"github.com/viant/lae/service/history"
	"github.com/viant/lae/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the service.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorkers overrides the configured worker count.
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.Scheduler.Workers = count
	}
}

// WithLogger sets the logger shared by all components.
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

// WithFs sets the storage service used to read input and write output.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithFsOptions sets storage options used when reading input, e.g. an embed.FS.
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithProgressListener registers a callback invoked on every progress update
// of a run.
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty spans
// are written to stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}

// WithHistory replaces the default in-memory run history.
func WithHistory(store history.Service) Option {
	return func(s *Service) {
		s.history = store
	}
}
