//go:generate mockgen -destination mock_monitor/mock_monitor.go github.com/fieldops/fieldops-push-server/monitor Monitor

package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/notifier"
	"github.com/fieldops/fieldops-push-server/repo/itemrepo"
)

const CName = "fieldops.monitor"

var log = logger.NewNamed(CName)

const (
	defaultInterval = 2 * time.Minute
	defaultLookback = 10 * time.Minute
)

type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

type KindReport struct {
	Kind     domain.Kind `json:"kind"`
	Matched  int         `json:"matched"`
	Notified int         `json:"notified"`
	Error    string      `json:"error,omitempty"`
}

type CycleReport struct {
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Kinds    []KindReport  `json:"kinds"`
}

type Status struct {
	State       State                     `json:"state"`
	Interval    string                    `json:"interval"`
	Checkpoints map[domain.Kind]time.Time `json:"checkpoints"`
	LastCycle   *time.Time                `json:"lastCycle,omitempty"`
}

func New() Monitor {
	return &monitor{now: time.Now}
}

// Monitor periodically re-scans shared items updated after the per-kind checkpoint
// and notifies their recipients again. It catches shares the immediate dispatch missed.
type Monitor interface {
	Start() (err error)
	// Stop cancels the schedule. A cycle in progress is not interrupted.
	Stop()
	// ForceCheck runs one cycle synchronously, independent of the schedule.
	ForceCheck(ctx context.Context) CycleReport
	Status() Status
	app.ComponentRunnable
}

type monitor struct {
	conf     Config
	itemRepo itemrepo.ItemRepo
	notifier notifier.Notifier
	now      func() time.Time
	metrics  monitorMetrics

	mu          sync.Mutex
	state       State
	cron        *cron.Cron
	stopCtx     context.Context
	checkpoints map[domain.Kind]time.Time
	lastCycle   time.Time

	// cycleMu serialises scheduled and forced cycles
	cycleMu sync.Mutex

	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (m *monitor) Init(a *app.App) (err error) {
	m.conf = a.MustComponent("config").(configSource).GetMonitor()
	if m.conf.Interval <= 0 {
		m.conf.Interval = defaultInterval
	}
	if m.conf.Lookback <= 0 {
		m.conf.Lookback = defaultLookback
	}
	m.itemRepo = a.MustComponent(itemrepo.CName).(itemrepo.ItemRepo)
	m.notifier = a.MustComponent(notifier.CName).(notifier.Notifier)
	m.state = StateStopped
	m.checkpoints = make(map[domain.Kind]time.Time, len(domain.ScannedKinds))
	initial := m.now().Add(-m.conf.Lookback)
	for _, kind := range domain.ScannedKinds {
		m.checkpoints[kind] = initial
	}
	if mc, ok := a.Component(metric.CName).(metric.Metric); ok {
		registerMetrics(mc.Registry(), m)
	}
	m.runCtx, m.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (m *monitor) Name() (name string) {
	return CName
}

func (m *monitor) Run(ctx context.Context) (err error) {
	if m.conf.Disabled {
		log.Info("monitor is disabled")
		return
	}
	return m.Start()
}

func (m *monitor) Start() (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateRunning {
		log.Info("monitor is already running")
		return
	}
	cl := cronLogger{}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err = c.AddFunc("@every "+m.conf.Interval.String(), m.scheduledCheck); err != nil {
		return fmt.Errorf("schedule monitor: %w", err)
	}
	c.Start()
	m.cron = c
	m.state = StateRunning
	log.Info("monitor started", zap.Duration("interval", m.conf.Interval))
	return
}

func (m *monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateStopped {
		log.Info("monitor is already stopped")
		return
	}
	m.stopCtx = m.cron.Stop()
	m.cron = nil
	m.state = StateStopped
	log.Info("monitor stopped")
}

func (m *monitor) ForceCheck(ctx context.Context) CycleReport {
	log.Info("forced check")
	return m.cycle(ctx)
}

func (m *monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		State:       m.state,
		Interval:    m.conf.Interval.String(),
		Checkpoints: make(map[domain.Kind]time.Time, len(m.checkpoints)),
	}
	for kind, ts := range m.checkpoints {
		st.Checkpoints[kind] = ts
	}
	if !m.lastCycle.IsZero() {
		lastCycle := m.lastCycle
		st.LastCycle = &lastCycle
	}
	return st
}

func (m *monitor) scheduledCheck() {
	m.cycle(m.runCtx)
}

func (m *monitor) cycle(ctx context.Context) (report CycleReport) {
	m.cycleMu.Lock()
	defer m.cycleMu.Unlock()

	report.Started = m.now()
	report.Kinds = make([]KindReport, len(domain.ScannedKinds))
	var wg sync.WaitGroup
	for i, kind := range domain.ScannedKinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Kinds[i] = m.checkKind(ctx, kind, report.Started)
		}()
	}
	wg.Wait()
	report.Duration = m.now().Sub(report.Started)

	m.mu.Lock()
	m.lastCycle = report.Started
	m.mu.Unlock()
	m.metrics.observe(report)

	var matched, notified int
	for _, k := range report.Kinds {
		matched += k.Matched
		notified += k.Notified
	}
	log.Info("check finished", zap.Int("matched", matched), zap.Int("notified", notified), zap.Duration("dur", report.Duration))
	return
}

// checkKind scans one kind. The checkpoint moves to cycleStart only if something matched,
// so an update landing while the scan runs is seen again by the next cycle.
func (m *monitor) checkKind(ctx context.Context, kind domain.Kind, cycleStart time.Time) (r KindReport) {
	r.Kind = kind
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("check panic", zap.String("kind", string(kind)), zap.Any("panic", rec))
			r.Error = fmt.Sprint(rec)
		}
	}()
	since := m.checkpoint(kind)
	items, err := m.itemRepo.FindSharedUpdatedSince(ctx, kind, since)
	if err != nil {
		log.Error("scan error", zap.String("kind", string(kind)), zap.Time("since", since), zap.Error(err))
		r.Error = err.Error()
		return
	}
	r.Matched = len(items)
	for _, item := range items {
		recipients := item.Recipients()
		if len(recipients) == 0 {
			continue
		}
		m.notifier.NotifyShared(ctx, item, recipients)
		r.Notified++
	}
	if len(items) > 0 {
		m.advance(kind, cycleStart)
		log.Info("kind checked", zap.String("kind", string(kind)), zap.Int("matched", r.Matched), zap.Int("notified", r.Notified))
	}
	return
}

func (m *monitor) checkpoint(kind domain.Kind) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkpoints[kind]
}

func (m *monitor) advance(kind domain.Kind, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ts.After(m.checkpoints[kind]) {
		m.checkpoints[kind] = ts
	}
}

func (m *monitor) Close(ctx context.Context) (err error) {
	m.Stop()
	m.mu.Lock()
	stopCtx := m.stopCtx
	m.mu.Unlock()
	if stopCtx != nil {
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
		}
	}
	if m.runCtxCancel != nil {
		m.runCtxCancel()
	}
	return
}

// cronLogger routes cron's own messages to the component logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
