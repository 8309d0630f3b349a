package transaction

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeCancelled = "cancelled"
)

type Metrics struct {
	started  prometheus.Counter
	finished *prometheus.CounterVec
	channels prometheus.Gauge
	busy     prometheus.Gauge
}

// NewMetrics builds the pool collectors and registers them when reg is not
// nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usergrid",
			Subsystem: "transaction",
			Name:      "started_total",
			Help:      "Transactions handed to a channel.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "usergrid",
			Subsystem: "transaction",
			Name:      "finished_total",
			Help:      "Transactions that completed, by outcome.",
		}, []string{"outcome"}),
		channels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "usergrid",
			Subsystem: "pool",
			Name:      "channels",
			Help:      "Channels created by the pool.",
		}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "usergrid",
			Subsystem: "pool",
			Name:      "channels_busy",
			Help:      "Channels currently handed out.",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, collector := range []prometheus.Collector{m.started, m.finished, m.channels, m.busy} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeStart() {
	if m == nil {
		return
	}
	m.started.Inc()
}

func (m *Metrics) observeFinish(outcome string) {
	if m == nil {
		return
	}
	m.finished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeChannels(total, busy int) {
	if m == nil {
		return
	}
	m.channels.Set(float64(total))
	m.busy.Set(float64(busy))
}
