package scheduler

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lae"
const subsystem = "scheduler"

type metrics struct {
	tasks    *prometheus.CounterVec
	duration prometheus.Histogram
	fatigue  *prometheus.GaugeVec
	inFlight prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_total",
			Help:      "Tasks executed by worker and outcome.",
		}, []string{"worker", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_duration_seconds",
			Help:      "Task execution time.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		fatigue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "worker_fatigue_seconds",
			Help:      "Fatigue factor multiplied by cumulative busy time.",
		}, []string{"worker"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_in_flight",
			Help:      "Tasks handed to workers and not yet finished.",
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.tasks, m.duration, m.fatigue, m.inFlight}
}

// register adds the collectors to registerer; collectors already registered
// by another scheduler are reused.
func (m *metrics) register(registerer prometheus.Registerer) error {
	if registerer == nil {
		return nil
	}
	for i, collector := range m.collectors() {
		err := registerer.Register(collector)
		if err == nil {
			continue
		}
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
		switch i {
		case 0:
			m.tasks = already.ExistingCollector.(*prometheus.CounterVec)
		case 1:
			m.duration = already.ExistingCollector.(prometheus.Histogram)
		case 2:
			m.fatigue = already.ExistingCollector.(*prometheus.GaugeVec)
		case 3:
			m.inFlight = already.ExistingCollector.(prometheus.Gauge)
		}
	}
	return nil
}

func (m *metrics) observe(w *worker, elapsed time.Duration, err error) {
	workerID := strconv.Itoa(w.id)
	status := "ok"
	switch {
	case errors.Is(err, ErrTaskPanic):
		status = "panic"
	case err != nil:
		status = "error"
	}
	m.tasks.WithLabelValues(workerID, status).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.fatigue.WithLabelValues(workerID).Set(w.fatigue() / float64(time.Second))
}
