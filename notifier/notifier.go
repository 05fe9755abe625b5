//go:generate mockgen -destination mock_notifier/mock_notifier.go github.com/fieldops/fieldops-push-server/notifier Notifier

package notifier

import (
	"context"
	"fmt"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
)

const CName = "fieldops.notifier"

var log = logger.NewNamed(CName)

const (
	defaultSharer      = "Alguien"
	defaultBroadcaster = "Administrador"
)

type shareTemplate struct {
	title  string
	screen string
}

var shareTemplates = map[domain.Kind]shareTemplate{
	domain.KindActivity:  {title: "📅 Nueva actividad compartida", screen: "Actividades"},
	domain.KindTask:      {title: "✅ Nueva tarea compartida", screen: "Tareas"},
	domain.KindNote:      {title: "📝 Nueva nota compartida", screen: "Notas"},
	domain.KindComplaint: {title: "⚠️ Nuevo reclamo compartido", screen: "Reclamos"},
}

func New() Notifier {
	return new(notifier)
}

// Notifier turns share events into push fan-outs. Delivery problems are logged
// and reported in the result, never returned as errors.
type Notifier interface {
	NotifySharedActivity(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult
	NotifySharedTask(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult
	NotifySharedNote(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult
	NotifySharedComplaint(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult
	// NotifyShared dispatches by item.Kind.
	NotifyShared(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult
	NotifyContractsUpdate(ctx context.Context, userIds []string, updatedBy domain.UserRef) domain.DeliveryResult
	NotifyStockUpdate(ctx context.Context, userIds []string, updatedBy domain.UserRef) domain.DeliveryResult
	// Send delivers an arbitrary notification to the users' registered devices.
	Send(ctx context.Context, userIds []string, notification domain.Notification) domain.DeliveryResult
	app.Component
}

type notifier struct {
	tokenRepo tokenrepo.TokenRepo
	gateway   gateway.Gateway
}

func (n *notifier) Init(a *app.App) (err error) {
	n.tokenRepo = a.MustComponent(tokenrepo.CName).(tokenrepo.TokenRepo)
	n.gateway = a.MustComponent(gateway.CName).(gateway.Gateway)
	return
}

func (n *notifier) Name() (name string) {
	return CName
}

func (n *notifier) NotifySharedActivity(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult {
	item.Kind = domain.KindActivity
	return n.NotifyShared(ctx, item, recipients)
}

func (n *notifier) NotifySharedTask(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult {
	item.Kind = domain.KindTask
	return n.NotifyShared(ctx, item, recipients)
}

func (n *notifier) NotifySharedNote(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult {
	item.Kind = domain.KindNote
	return n.NotifyShared(ctx, item, recipients)
}

func (n *notifier) NotifySharedComplaint(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult {
	item.Kind = domain.KindComplaint
	return n.NotifyShared(ctx, item, recipients)
}

func (n *notifier) NotifyShared(ctx context.Context, item domain.SharedItem, recipients []string) domain.DeliveryResult {
	tpl, ok := shareTemplates[item.Kind]
	if !ok {
		log.Warn("no template for kind", zap.String("kind", string(item.Kind)), zap.String("itemId", item.Id))
		return domain.DeliveryResult{Status: domain.DeliveryStatusFailed, Error: domain.ErrUnknownKind.Error()}
	}
	actor := item.CreatedBy.Username
	if actor == "" {
		actor = defaultSharer
	}
	data := map[string]string{
		"type":   string(item.Kind),
		"screen": tpl.screen,
	}
	data[string(item.Kind)+"Id"] = item.Id
	notification := domain.Notification{
		Title: tpl.title,
		Body:  fmt.Sprintf(`%s compartió: "%s"`, actor, item.Label),
		Data:  data,
	}
	// owner must never receive its own share
	userIds := domain.ExcludeUser(recipients, item.CreatedBy.Id)
	res := n.Send(ctx, userIds, notification)
	log.Info("shared item notified",
		zap.String("kind", string(item.Kind)),
		zap.String("itemId", item.Id),
		zap.Int("users", len(userIds)),
		zap.String("status", string(res.Status)),
	)
	return res
}

func (n *notifier) NotifyContractsUpdate(ctx context.Context, userIds []string, updatedBy domain.UserRef) domain.DeliveryResult {
	return n.broadcast(ctx, domain.KindContracts, userIds, updatedBy, domain.Notification{
		Title: "📄 Contratos actualizados",
		Body:  broadcaster(updatedBy) + " ha cargado nuevos contratos",
		Data:  map[string]string{"type": string(domain.KindContracts), "screen": "Contratos"},
	})
}

func (n *notifier) NotifyStockUpdate(ctx context.Context, userIds []string, updatedBy domain.UserRef) domain.DeliveryResult {
	return n.broadcast(ctx, domain.KindStock, userIds, updatedBy, domain.Notification{
		Title: "📦 Stock actualizado",
		Body:  broadcaster(updatedBy) + " ha actualizado el inventario",
		Data:  map[string]string{"type": string(domain.KindStock), "screen": "Stock"},
	})
}

func (n *notifier) broadcast(ctx context.Context, kind domain.Kind, userIds []string, updatedBy domain.UserRef, notification domain.Notification) domain.DeliveryResult {
	userIds = domain.ExcludeUser(userIds, updatedBy.Id)
	res := n.Send(ctx, userIds, notification)
	log.Info("broadcast notified",
		zap.String("kind", string(kind)),
		zap.String("actorId", updatedBy.Id),
		zap.Int("users", len(userIds)),
		zap.String("status", string(res.Status)),
	)
	return res
}

func broadcaster(u domain.UserRef) string {
	if u.Username == "" {
		return defaultBroadcaster
	}
	return u.Username
}

func (n *notifier) Send(ctx context.Context, userIds []string, notification domain.Notification) domain.DeliveryResult {
	if len(userIds) == 0 {
		return domain.DeliveryResult{Status: domain.DeliveryStatusNoValidTokens}
	}
	regs, err := n.tokenRepo.FindTokensForUsers(ctx, userIds)
	if err != nil {
		log.Error("find tokens error", zap.Int("users", len(userIds)), zap.Error(err))
		return domain.DeliveryResult{Status: domain.DeliveryStatusFailed, Error: err.Error()}
	}
	if len(regs) < len(userIds) {
		log.Debug("users without registration", zap.Int("users", len(userIds)), zap.Int("registrations", len(regs)))
	}
	return n.gateway.Send(ctx, domain.RecipientsFromRegistrations(regs), notification)
}
