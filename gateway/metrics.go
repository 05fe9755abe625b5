package gateway

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldops/fieldops-push-server/domain"
)

type gatewayMetrics struct {
	sendCount     atomic.Uint64
	messages      atomic.Uint64
	ticketsOk     atomic.Uint64
	ticketsError  atomic.Uint64
	batchFailures atomic.Uint64
	sendDuration  *prometheus.SummaryVec
}

func (m *gatewayMetrics) observe(res domain.DeliveryResult, dur time.Duration) {
	m.sendCount.Add(1)
	m.messages.Add(uint64(res.Attempted))
	m.ticketsOk.Add(uint64(res.Delivered))
	m.ticketsError.Add(uint64(res.Errors))
	if m.sendDuration != nil {
		m.sendDuration.WithLabelValues().Observe(dur.Seconds())
	}
}

func registerMetrics(reg *prometheus.Registry, g *gateway) {
	gauge := func(name, help string, v *atomic.Uint64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "push",
			Subsystem: "gateway",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(v.Load())
		})
	}
	reg.MustRegister(gauge("send_count", "total count of send operations", &g.metrics.sendCount))
	reg.MustRegister(gauge("messages", "total count of messages handed to the provider", &g.metrics.messages))
	reg.MustRegister(gauge("tickets_ok", "total count of ok tickets", &g.metrics.ticketsOk))
	reg.MustRegister(gauge("tickets_error", "total count of error tickets", &g.metrics.ticketsError))
	reg.MustRegister(gauge("batch_failures", "total count of failed batches", &g.metrics.batchFailures))
	g.metrics.sendDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "push",
		Subsystem: "gateway",
		Name:      "duration_seconds",
		Objectives: map[float64]float64{
			0.5:  0.5,
			0.85: 0.01,
			0.95: 0.0005,
			0.99: 0.0001,
		},
	}, nil)
	reg.MustRegister(g.metrics.sendDuration)
}
