package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/notifier"
	"github.com/fieldops/fieldops-push-server/queue"
	"github.com/fieldops/fieldops-push-server/repo/itemrepo"
	"github.com/fieldops/fieldops-push-server/repo/userrepo"
)

const CName = "fieldops.dispatcher"

var log = logger.NewNamed(CName)

const (
	defaultWorkers = 4
	handleTimeout  = time.Minute
)

type Config struct {
	Workers int `yaml:"workers"`
}

type configSource interface {
	GetDispatcher() Config
}

func New() Dispatcher {
	return new(dispatcher)
}

// Dispatcher consumes share events from the queue and hands them to the notifier.
type Dispatcher interface {
	app.ComponentRunnable
}

type dispatcher struct {
	conf         Config
	queue        queue.Queue
	notifier     notifier.Notifier
	itemRepo     itemrepo.ItemRepo
	userRepo     userrepo.UserRepo
	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (d *dispatcher) Init(a *app.App) (err error) {
	d.conf = a.MustComponent("config").(configSource).GetDispatcher()
	if d.conf.Workers <= 0 {
		d.conf.Workers = defaultWorkers
	}
	d.queue = a.MustComponent(queue.CName).(queue.Queue)
	d.notifier = a.MustComponent(notifier.CName).(notifier.Notifier)
	d.itemRepo = a.MustComponent(itemrepo.CName).(itemrepo.ItemRepo)
	d.userRepo = a.MustComponent(userrepo.CName).(userrepo.UserRepo)
	d.runCtx, d.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (d *dispatcher) Name() (name string) {
	return CName
}

func (d *dispatcher) Run(ctx context.Context) (err error) {
	for range d.conf.Workers {
		if err = d.queue.Consume(d.runCtx, d.handle); err != nil {
			return err
		}
	}
	log.Info("dispatcher started", zap.Int("workers", d.conf.Workers))
	return
}

func (d *dispatcher) handle(msg queue.Message) (err error) {
	ctx, cancel := context.WithTimeout(d.runCtx, handleTimeout)
	defer cancel()
	st := time.Now()
	var res domain.DeliveryResult
	switch {
	case msg.Kind.Shared():
		res, err = d.handleShared(ctx, msg)
	case msg.Kind == domain.KindContracts || msg.Kind == domain.KindStock:
		res, err = d.handleBroadcast(ctx, msg)
	default:
		// retrying can't fix an unknown kind
		log.Warn("skip event of unknown kind", zap.String("id", msg.Id), zap.String("kind", string(msg.Kind)))
		return nil
	}
	if err != nil {
		log.Error("dispatch error", zap.String("id", msg.Id), zap.String("kind", string(msg.Kind)), zap.Error(err))
		return
	}
	log.Info("event dispatched",
		zap.String("id", msg.Id),
		zap.String("kind", string(msg.Kind)),
		zap.String("status", string(res.Status)),
		zap.Int("delivered", res.Delivered),
		zap.Duration("lag", st.Sub(msg.Created)),
		zap.Duration("dur", time.Since(st)),
	)
	return nil
}

func (d *dispatcher) handleShared(ctx context.Context, msg queue.Message) (res domain.DeliveryResult, err error) {
	item, err := d.itemRepo.GetById(ctx, msg.Kind, msg.ItemId)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidId) {
		log.Info("shared item is gone, skip", zap.String("kind", string(msg.Kind)), zap.String("itemId", msg.ItemId))
		return domain.DeliveryResult{Status: domain.DeliveryStatusNoValidTokens}, nil
	}
	if err != nil {
		return
	}
	recipients := msg.Recipients
	if len(recipients) == 0 {
		recipients = item.Recipients()
	}
	return d.notifier.NotifyShared(ctx, item, recipients), nil
}

func (d *dispatcher) handleBroadcast(ctx context.Context, msg queue.Message) (res domain.DeliveryResult, err error) {
	actor := domain.UserRef{Id: msg.ActorId}
	if msg.ActorId != "" {
		user, uErr := d.userRepo.GetUser(ctx, msg.ActorId)
		switch {
		case uErr == nil:
			actor.Username = user.Username
		case errors.Is(uErr, domain.ErrNotFound), errors.Is(uErr, domain.ErrValidation):
			log.Info("broadcast actor not found", zap.String("actorId", msg.ActorId))
		default:
			return res, uErr
		}
	}
	recipients := msg.Recipients
	if len(recipients) == 0 {
		if recipients, err = d.userRepo.GetAudience(ctx, permissionFor(msg.Kind)); err != nil {
			return res, fmt.Errorf("audience: %w", err)
		}
	}
	if msg.Kind == domain.KindContracts {
		return d.notifier.NotifyContractsUpdate(ctx, recipients, actor), nil
	}
	return d.notifier.NotifyStockUpdate(ctx, recipients, actor), nil
}

func permissionFor(kind domain.Kind) domain.Permission {
	if kind == domain.KindContracts {
		return domain.PermissionContracts
	}
	return domain.PermissionStock
}

func (d *dispatcher) Close(ctx context.Context) (err error) {
	if d.runCtxCancel != nil {
		d.runCtxCancel()
	}
	return
}
