package push

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/monitor"
	"github.com/fieldops/fieldops-push-server/notifier"
	"github.com/fieldops/fieldops-push-server/queue"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
)

const CName = "fieldops.push"

var log = logger.NewNamed(CName)

const defaultAddr = ":8080"

type Config struct {
	Addr string `yaml:"addr"`
}

type configSource interface {
	GetAPI() Config
}

func New() Push {
	return new(push)
}

// Push serves the HTTP api: token registration, share event intake and ops endpoints.
type Push interface {
	Handler() http.Handler
	app.ComponentRunnable
}

type push struct {
	conf      Config
	tokenRepo tokenrepo.TokenRepo
	gateway   gateway.Gateway
	notifier  notifier.Notifier
	monitor   monitor.Monitor
	queue     queue.Queue
	metric    metric.Metric
	handler   http.Handler
	server    *http.Server
}

func (p *push) Init(a *app.App) (err error) {
	p.conf = a.MustComponent("config").(configSource).GetAPI()
	if p.conf.Addr == "" {
		p.conf.Addr = defaultAddr
	}
	p.tokenRepo = a.MustComponent(tokenrepo.CName).(tokenrepo.TokenRepo)
	p.gateway = a.MustComponent(gateway.CName).(gateway.Gateway)
	p.notifier = a.MustComponent(notifier.CName).(notifier.Notifier)
	p.monitor = a.MustComponent(monitor.CName).(monitor.Monitor)
	p.queue = a.MustComponent(queue.CName).(queue.Queue)
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		p.metric = m
	}
	p.handler = newRouter(&handler{p: p})
	return
}

func (p *push) Name() (name string) {
	return CName
}

func (p *push) Run(ctx context.Context) (err error) {
	ln, err := net.Listen("tcp", p.conf.Addr)
	if err != nil {
		return err
	}
	p.server = &http.Server{
		Handler:           p.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if sErr := p.server.Serve(ln); sErr != nil && !errors.Is(sErr, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(sErr))
		}
	}()
	log.Info("http api started", zap.String("addr", ln.Addr().String()))
	return
}

func (p *push) Handler() http.Handler {
	return p.handler
}

func (p *push) RegisterToken(ctx context.Context, userId, token, deviceInfo string) error {
	return p.tokenRepo.Register(ctx, userId, token, deviceInfo)
}

func (p *push) UnregisterToken(ctx context.Context, userId string) error {
	return p.tokenRepo.Unregister(ctx, userId)
}

// SubmitEvent queues a share event and returns its id. Delivery happens later in the dispatcher.
func (p *push) SubmitEvent(ctx context.Context, actorId string, req eventRequest) (id string, err error) {
	if !req.Kind.Valid() {
		return "", domain.ErrUnknownKind
	}
	if req.Kind.Shared() && req.ItemId == "" {
		return "", fmt.Errorf("%w: itemId is required", domain.ErrValidation)
	}
	msg := queue.Message{
		Id:         uuid.NewString(),
		Kind:       req.Kind,
		ItemId:     req.ItemId,
		Recipients: req.Recipients,
		ActorId:    req.ActorId,
		Created:    time.Now(),
	}
	if msg.ActorId == "" {
		msg.ActorId = actorId
	}
	if err = p.queue.Add(ctx, msg); err != nil {
		return "", err
	}
	return msg.Id, nil
}

func (p *push) ListTokens(ctx context.Context) (resp tokensResponse, err error) {
	regs, err := p.tokenRepo.List(ctx)
	if err != nil {
		return
	}
	resp.Tokens = make([]tokenInfo, len(regs))
	for i, reg := range regs {
		valid := p.gateway.IsValidToken(reg.Token)
		resp.Tokens[i] = tokenInfo{
			UserId:      reg.UserId,
			Token:       reg.Token,
			DeviceInfo:  reg.DeviceInfo,
			LastUpdated: reg.LastUpdated,
			Valid:       valid,
		}
		if valid {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}
	resp.Total = len(regs)
	return
}

func (p *push) SendTest(ctx context.Context, userId string) domain.DeliveryResult {
	return p.notifier.Send(ctx, []string{userId}, domain.Notification{
		Title: "🧪 Notificación de Prueba",
		Body:  "Si ves esto, las notificaciones push están funcionando correctamente",
		Data:  map[string]string{"type": "test", "timestamp": time.Now().UTC().Format(time.RFC3339)},
	})
}

func (p *push) SendToUser(ctx context.Context, req sendToUserRequest) (res domain.DeliveryResult, err error) {
	if req.UserId == "" {
		return res, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	n := domain.Notification{
		Title: req.Title,
		Body:  req.Body,
		Data:  map[string]string{"type": "manual-test", "timestamp": time.Now().UTC().Format(time.RFC3339)},
	}
	if n.Title == "" {
		n.Title = "📬 Notificación Manual"
	}
	if n.Body == "" {
		n.Body = "Esta es una notificación de prueba enviada manualmente"
	}
	return p.notifier.Send(ctx, []string{req.UserId}, n), nil
}

func (p *push) Close(ctx context.Context) (err error) {
	if p.server != nil {
		return p.server.Shutdown(ctx)
	}
	return
}
