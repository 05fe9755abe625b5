package notifier

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo/mock_tokenrepo"
)

var ctx = context.Background()

func TestNotifier_NotifySharedTask(t *testing.T) {
	fx := newFixture(t)
	item := domain.SharedItem{
		Id:         "task1",
		Label:      "Inspect site 4",
		CreatedBy:  domain.UserRef{Id: "U", Username: "ana"},
		SharedWith: []string{"V", "W"},
	}
	fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"V", "W"}).Return([]domain.PushRegistration{
		{UserId: "V", Token: "valid-V"},
		{UserId: "W", Token: "valid-W"},
	}, nil)

	res := fx.NotifySharedTask(ctx, item, item.Recipients())
	assert.Equal(t, domain.DeliveryStatusOk, res.Status)
	assert.Equal(t, 2, res.Delivered)

	batches := fx.provider.batches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	var tokens []string
	for _, msg := range batches[0] {
		tokens = append(tokens, msg.To)
		assert.Equal(t, "✅ Nueva tarea compartida", msg.Title)
		assert.Equal(t, `ana compartió: "Inspect site 4"`, msg.Body)
		assert.Equal(t, map[string]string{"type": "task", "taskId": "task1", "screen": "Tareas"}, msg.Data)
	}
	assert.ElementsMatch(t, []string{"valid-V", "valid-W"}, tokens)
}

func TestNotifier_NotifyShared(t *testing.T) {
	t.Run("owner excluded", func(t *testing.T) {
		fx := newFixture(t)
		item := domain.SharedItem{Kind: domain.KindNote, Id: "n1", CreatedBy: domain.UserRef{Id: "owner"}}
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"A", "B"}).Return(nil, nil)
		res := fx.NotifyShared(ctx, item, []string{"A", "owner", "B", "A"})
		assert.Equal(t, domain.DeliveryStatusNoValidTokens, res.Status)
	})
	t.Run("actor fallback", func(t *testing.T) {
		fx := newFixture(t)
		item := domain.SharedItem{Label: "Visita", CreatedBy: domain.UserRef{Id: "owner"}}
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"A"}).Return([]domain.PushRegistration{{UserId: "A", Token: "valid-A"}}, nil)
		fx.NotifySharedActivity(ctx, item, []string{"A"})

		batches := fx.provider.batches()
		require.Len(t, batches, 1)
		assert.Equal(t, "📅 Nueva actividad compartida", batches[0][0].Title)
		assert.Equal(t, `Alguien compartió: "Visita"`, batches[0][0].Body)
		assert.Equal(t, "Actividades", batches[0][0].Data["screen"])
		assert.Contains(t, batches[0][0].Data, "activityId")
	})
	t.Run("complaint template", func(t *testing.T) {
		fx := newFixture(t)
		item := domain.SharedItem{Id: "c1", Label: "Fuga", CreatedBy: domain.UserRef{Id: "owner", Username: "luis"}}
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"A"}).Return([]domain.PushRegistration{{UserId: "A", Token: "valid-A"}}, nil)
		fx.NotifySharedComplaint(ctx, item, []string{"A"})

		batches := fx.provider.batches()
		require.Len(t, batches, 1)
		assert.Equal(t, "⚠️ Nuevo reclamo compartido", batches[0][0].Title)
		assert.Equal(t, "c1", batches[0][0].Data["complaintId"])
	})
	t.Run("only owner", func(t *testing.T) {
		fx := newFixture(t)
		item := domain.SharedItem{Kind: domain.KindTask, CreatedBy: domain.UserRef{Id: "owner"}}
		res := fx.NotifyShared(ctx, item, []string{"owner"})
		assert.Equal(t, domain.DeliveryStatusNoValidTokens, res.Status)
		assert.Empty(t, fx.provider.batches())
	})
	t.Run("unknown kind", func(t *testing.T) {
		fx := newFixture(t)
		res := fx.NotifyShared(ctx, domain.SharedItem{Kind: domain.KindStock}, []string{"A"})
		assert.Equal(t, domain.DeliveryStatusFailed, res.Status)
		assert.NotEmpty(t, res.Error)
	})
	t.Run("registry error", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
		res := fx.NotifySharedNote(ctx, domain.SharedItem{CreatedBy: domain.UserRef{Id: "owner"}}, []string{"A"})
		assert.Equal(t, domain.DeliveryStatusFailed, res.Status)
		assert.Equal(t, "connection refused", res.Error)
		assert.Empty(t, fx.provider.batches())
	})
}

func TestNotifier_Broadcast(t *testing.T) {
	t.Run("contracts", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"A", "B"}).Return([]domain.PushRegistration{
			{UserId: "A", Token: "valid-A"},
			{UserId: "B", Token: "local-B"},
		}, nil)
		res := fx.NotifyContractsUpdate(ctx, []string{"A", "admin", "B"}, domain.UserRef{Id: "admin"})
		assert.Equal(t, 1, res.Attempted)

		batches := fx.provider.batches()
		require.Len(t, batches, 1)
		assert.Equal(t, "📄 Contratos actualizados", batches[0][0].Title)
		assert.Equal(t, "Administrador ha cargado nuevos contratos", batches[0][0].Body)
		assert.Equal(t, map[string]string{"type": "contracts", "screen": "Contratos"}, batches[0][0].Data)
	})
	t.Run("stock", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().FindTokensForUsers(gomock.Any(), []string{"A"}).Return([]domain.PushRegistration{{UserId: "A", Token: "valid-A"}}, nil)
		fx.NotifyStockUpdate(ctx, []string{"A"}, domain.UserRef{Id: "admin", Username: "marta"})

		batches := fx.provider.batches()
		require.Len(t, batches, 1)
		assert.Equal(t, "📦 Stock actualizado", batches[0][0].Title)
		assert.Equal(t, "marta ha actualizado el inventario", batches[0][0].Body)
	})
}

type fixture struct {
	Notifier
	tokenRepo *mock_tokenrepo.MockTokenRepo
	provider  *recordingProvider
	a         *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		Notifier:  New(),
		tokenRepo: mock_tokenrepo.NewMockTokenRepo(ctrl),
		provider:  &recordingProvider{},
		a:         new(app.App),
	}
	fx.tokenRepo.EXPECT().Name().Return(tokenrepo.CName).AnyTimes()
	fx.tokenRepo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.tokenRepo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.tokenRepo.EXPECT().Close(gomock.Any()).AnyTimes()

	gw := gateway.New()
	gw.RegisterProvider("recording", fx.provider)
	fx.a.Register(&testConfig{}).Register(fx.tokenRepo).Register(gw).Register(fx.Notifier)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}

type testConfig struct{}

func (c *testConfig) Init(a *app.App) (err error) {
	return
}

func (c *testConfig) Name() (name string) {
	return "config"
}

func (c *testConfig) GetGateway() gateway.Config {
	return gateway.Config{Provider: "recording"}
}

type recordingProvider struct {
	mu   sync.Mutex
	sent [][]domain.Message
}

func (p *recordingProvider) IsValidToken(token string) bool {
	return strings.HasPrefix(token, "valid-")
}

func (p *recordingProvider) MaxBatchSize() int {
	return 100
}

func (p *recordingProvider) SendBatch(ctx context.Context, messages []domain.Message) ([]domain.Ticket, error) {
	p.mu.Lock()
	p.sent = append(p.sent, messages)
	p.mu.Unlock()
	tickets := make([]domain.Ticket, len(messages))
	for i := range tickets {
		tickets[i].Status = domain.TicketStatusOk
	}
	return tickets, nil
}

func (p *recordingProvider) batches() [][]domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent
}
