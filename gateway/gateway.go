//go:generate mockgen -destination mock_gateway/mock_gateway.go github.com/fieldops/fieldops-push-server/gateway Gateway

package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/cheggaaa/mb/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
)

const CName = "fieldops.gateway"

var log = logger.NewNamed(CName)

var ErrNotRunning = errors.New("gateway is not running")

const (
	defaultBatchSize    = 100
	defaultConcurrency  = 4
	defaultBatchTimeout = 15 * time.Second
)

type Config struct {
	Provider          string `yaml:"provider"`
	BatchSize         int    `yaml:"batchSize"`
	Concurrency       int    `yaml:"concurrency"`
	BatchTimeoutSec   int    `yaml:"batchTimeoutSec"`
	PruneUnregistered bool   `yaml:"pruneUnregistered"`
}

type configSource interface {
	GetGateway() Config
}

func New() Gateway {
	return &gateway{providers: make(map[string]Provider)}
}

// Gateway hides the push provider: it filters tokens, splits messages into batches
// and collects one ticket per delivered message. The provider is resolved in Run;
// before that no token is valid and Send fails with ErrNotRunning.
type Gateway interface {
	RegisterProvider(name string, provider Provider)
	IsValidToken(token string) bool
	Send(ctx context.Context, recipients []domain.Recipient, notification domain.Notification) domain.DeliveryResult
	app.ComponentRunnable
}

// Provider is a push delivery backend.
type Provider interface {
	IsValidToken(token string) bool
	// MaxBatchSize is the largest number of messages accepted by one SendBatch call.
	MaxBatchSize() int
	// SendBatch returns one ticket per message in input order. An error means the whole batch failed.
	SendBatch(ctx context.Context, messages []domain.Message) (tickets []domain.Ticket, err error)
}

type gateway struct {
	conf          Config
	batchTimeout  time.Duration
	providers     map[string]Provider
	provider      Provider
	tokenRepo     tokenrepo.TokenRepo
	invalidTokens *mb.MB[string]
	metrics       gatewayMetrics
	runCtx        context.Context
	runCtxCancel  context.CancelFunc
}

func (g *gateway) Init(a *app.App) (err error) {
	g.conf = a.MustComponent("config").(configSource).GetGateway()
	if g.conf.Provider == "" {
		g.conf.Provider = "expo"
	}
	if g.conf.BatchSize <= 0 {
		g.conf.BatchSize = defaultBatchSize
	}
	if g.conf.Concurrency <= 0 {
		g.conf.Concurrency = defaultConcurrency
	}
	g.batchTimeout = defaultBatchTimeout
	if g.conf.BatchTimeoutSec > 0 {
		g.batchTimeout = time.Duration(g.conf.BatchTimeoutSec) * time.Second
	}
	if g.conf.PruneUnregistered {
		g.tokenRepo = a.MustComponent(tokenrepo.CName).(tokenrepo.TokenRepo)
		g.invalidTokens = mb.New[string](100)
	}
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		registerMetrics(m.Registry(), g)
	}
	g.runCtx, g.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (g *gateway) Name() (name string) {
	return CName
}

func (g *gateway) Run(ctx context.Context) (err error) {
	provider, ok := g.providers[g.conf.Provider]
	if !ok {
		return fmt.Errorf("push provider %q is not registered", g.conf.Provider)
	}
	g.provider = provider
	if g.invalidTokens != nil {
		go g.removeTokensLoop()
	}
	log.Info("gateway started", zap.String("provider", g.conf.Provider), zap.Int("batchSize", g.batchSize()))
	return
}

func (g *gateway) RegisterProvider(name string, provider Provider) {
	g.providers[name] = provider
}

func (g *gateway) IsValidToken(token string) bool {
	if g.provider == nil {
		return false
	}
	return g.provider.IsValidToken(token)
}

func (g *gateway) batchSize() int {
	size := g.conf.BatchSize
	if g.provider != nil {
		if limit := g.provider.MaxBatchSize(); limit > 0 && limit < size {
			size = limit
		}
	}
	return size
}

func (g *gateway) Send(ctx context.Context, recipients []domain.Recipient, notification domain.Notification) (res domain.DeliveryResult) {
	if g.provider == nil {
		log.Error("send before run", zap.Int("recipients", len(recipients)))
		return domain.DeliveryResult{Status: domain.DeliveryStatusFailed, Error: ErrNotRunning.Error()}
	}
	st := time.Now()
	messages := make([]domain.Message, 0, len(recipients))
	for _, r := range recipients {
		if !g.provider.IsValidToken(r.Token) {
			log.Debug("skip invalid token", zap.String("token", tokenPrefix(r.Token)), zap.String("device", r.DeviceInfo))
			continue
		}
		messages = append(messages, domain.NewMessage(r.Token, notification))
	}
	if len(messages) == 0 {
		log.Info("no valid tokens", zap.Int("recipients", len(recipients)))
		return domain.DeliveryResult{Status: domain.DeliveryStatusNoValidTokens}
	}

	batches := partition(messages, g.batchSize())
	batchTickets := make([][]domain.Ticket, len(batches))
	var eg errgroup.Group
	eg.SetLimit(g.conf.Concurrency)
	for i, batch := range batches {
		eg.Go(func() error {
			batchTickets[i] = g.sendBatch(ctx, i, batch)
			return nil
		})
	}
	_ = eg.Wait()

	res.Attempted = len(messages)
	for _, tickets := range batchTickets {
		res.Tickets = append(res.Tickets, tickets...)
	}
	for _, ticket := range res.Tickets {
		if ticket.Status == domain.TicketStatusOk {
			continue
		}
		res.Errors++
		log.Warn("ticket error", zap.String("token", tokenPrefix(ticket.Token)), zap.String("error", ticket.Error), zap.String("message", ticket.Message))
		if ticket.Error == domain.TicketErrDeviceNotRegistered && g.invalidTokens != nil {
			g.onInvalid(ticket.Token)
		}
	}
	res.Delivered = len(res.Tickets) - res.Errors
	res.Status = domain.DeliveryStatusOk
	if res.Delivered == 0 {
		res.Status = domain.DeliveryStatusFailed
	}
	g.metrics.observe(res, time.Since(st))
	log.Info("push sent",
		zap.Int("attempted", res.Attempted),
		zap.Int("delivered", res.Delivered),
		zap.Int("errors", res.Errors),
		zap.Int("batches", len(batches)),
		zap.Duration("dur", time.Since(st)),
	)
	return
}

// sendBatch never fails: a transport error or timeout drops the batch's tickets.
func (g *gateway) sendBatch(ctx context.Context, idx int, batch []domain.Message) []domain.Ticket {
	ctx, cancel := context.WithTimeout(ctx, g.batchTimeout)
	defer cancel()
	tickets, err := g.provider.SendBatch(ctx, batch)
	if err == nil && len(tickets) != len(batch) {
		err = fmt.Errorf("provider returned %d tickets for %d messages", len(tickets), len(batch))
	}
	if err != nil {
		g.metrics.batchFailures.Add(1)
		log.Error("batch send failed", zap.Int("batch", idx), zap.Int("size", len(batch)), zap.Error(err))
		return nil
	}
	for i := range tickets {
		tickets[i].Token = batch[i].To
	}
	return tickets
}

func partition(messages []domain.Message, size int) (batches [][]domain.Message) {
	for len(messages) > 0 {
		n := min(size, len(messages))
		batches = append(batches, messages[:n])
		messages = messages[n:]
	}
	return
}

func (g *gateway) onInvalid(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = g.invalidTokens.Add(ctx, token)
}

func (g *gateway) removeTokensLoop() {
	ctx := mb.CtxWithTimeLimit(g.runCtx, time.Second)
	cond := g.invalidTokens.NewCond().WithMin(10)
	for {
		tokens, err := cond.Wait(ctx)
		if err != nil {
			return
		}
		st := time.Now()
		if err = g.tokenRepo.RemoveTokens(ctx, tokens); err != nil {
			log.Error("remove tokens error", zap.Error(err))
		} else {
			log.Info("remove tokens success", zap.Int("count", len(tokens)), zap.Duration("dur", time.Since(st)))
		}
	}
}

func tokenPrefix(token string) string {
	if len(token) > 24 {
		return token[:24] + "..."
	}
	return token
}

func (g *gateway) Close(ctx context.Context) (err error) {
	if g.runCtxCancel != nil {
		g.runCtxCancel()
	}
	if g.invalidTokens != nil {
		return g.invalidTokens.Close()
	}
	return
}
