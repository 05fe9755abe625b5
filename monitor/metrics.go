package monitor

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type monitorMetrics struct {
	cycles        atomic.Uint64
	matched       atomic.Uint64
	notified      atomic.Uint64
	scanErrors    atomic.Uint64
	cycleDuration prometheus.Summary
}

func (m *monitorMetrics) observe(report CycleReport) {
	m.cycles.Add(1)
	for _, k := range report.Kinds {
		m.matched.Add(uint64(k.Matched))
		m.notified.Add(uint64(k.Notified))
		if k.Error != "" {
			m.scanErrors.Add(1)
		}
	}
	if m.cycleDuration != nil {
		m.cycleDuration.Observe(report.Duration.Seconds())
	}
}

func registerMetrics(reg *prometheus.Registry, m *monitor) {
	gauge := func(name, help string, v *atomic.Uint64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "push",
			Subsystem: "monitor",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(v.Load())
		})
	}
	reg.MustRegister(gauge("cycles", "total count of check cycles", &m.metrics.cycles))
	reg.MustRegister(gauge("matched", "total count of matched shared items", &m.metrics.matched))
	reg.MustRegister(gauge("notified", "total count of re-notified shared items", &m.metrics.notified))
	reg.MustRegister(gauge("scan_errors", "total count of failed kind scans", &m.metrics.scanErrors))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "push",
		Subsystem: "monitor",
		Name:      "running",
		Help:      "1 when the schedule is active",
	}, func() float64 {
		if m.Status().State == StateRunning {
			return 1
		}
		return 0
	}))
	m.metrics.cycleDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "push",
		Subsystem: "monitor",
		Name:      "cycle_duration_seconds",
		Objectives: map[float64]float64{
			0.5:  0.5,
			0.95: 0.0005,
			0.99: 0.0001,
		},
	})
	reg.MustRegister(m.metrics.cycleDuration)
}
