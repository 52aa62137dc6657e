// Package promrecorder records frame pulls as Prometheus metrics.
package promrecorder

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
)

// Error reasons used as the "reason" label.
const (
	ReasonOutOfRange = "out_of_range"
	ReasonCanceled   = "canceled"
	ReasonSource     = "source"
)

// Recorder implements ports.PullRecorder on its own registry, so several
// runs in one process do not share counters.
type Recorder struct {
	registry *prometheus.Registry

	pulls    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pulls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vszip",
			Subsystem: "rfs",
			Name:      "pulls_total",
			Help:      "Frame pulls by selected source clip",
		}, []string{"source"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vszip",
			Subsystem: "rfs",
			Name:      "pull_errors_total",
			Help:      "Failed frame pulls by reason",
		}, []string{"reason"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vszip",
			Subsystem: "rfs",
			Name:      "pull_duration_seconds",
			Help:      "Time spent pulling one output frame",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

// RecordPull counts one pull of a frame selected from source.
func (r *Recorder) RecordPull(source string, err error, elapsed time.Duration) {
	r.pulls.WithLabelValues(source).Inc()
	r.duration.Observe(elapsed.Seconds())
	if err != nil {
		r.errors.WithLabelValues(reason(err)).Inc()
	}
}

// Registry returns the registry holding the pull metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func reason(err error) string {
	switch {
	case errors.Is(err, rfs.ErrIndexOutOfRange):
		return ReasonOutOfRange
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonSource
	}
}

// Ensure Recorder implements ports.PullRecorder
var _ ports.PullRecorder = (*Recorder)(nil)

// Noop discards pulls.
type Noop struct{}

// NewNoop creates a recorder that records nothing.
func NewNoop() *Noop {
	return &Noop{}
}

// RecordPull does nothing.
func (n *Noop) RecordPull(source string, err error, elapsed time.Duration) {}

// Ensure Noop implements ports.PullRecorder
var _ ports.PullRecorder = (*Noop)(nil)
