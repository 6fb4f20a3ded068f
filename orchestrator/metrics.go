package orchestrator

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the work of one run on a private registry, so batch runs
// can dump it to a node-exporter textfile when they finish.
type Metrics struct {
	reg        *prometheus.Registry
	utterances *prometheus.CounterVec
	lines      prometheus.Counter
	duration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		utterances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "labelgen_utterances_total",
				Help: "Utterances processed, by job and final state.",
			},
			[]string{"job", "state"},
		),
		lines: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "labelgen_label_lines_total",
				Help: "Label lines written.",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "labelgen_utterance_duration_seconds",
				Help:    "Time spent on one utterance.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"job"},
		),
	}
	m.reg.MustRegister(m.utterances, m.lines, m.duration)
	return m
}

func (m *Metrics) observe(job string, o Outcome) {
	if m == nil {
		return
	}
	m.utterances.WithLabelValues(job, o.State.String()).Inc()
	m.lines.Add(float64(o.Lines))
	m.duration.WithLabelValues(job).Observe(o.Elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteTextfile dumps the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
