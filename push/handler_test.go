package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
	"github.com/fieldops/fieldops-push-server/gateway/mock_gateway"
	"github.com/fieldops/fieldops-push-server/monitor"
	"github.com/fieldops/fieldops-push-server/monitor/mock_monitor"
	"github.com/fieldops/fieldops-push-server/notifier"
	"github.com/fieldops/fieldops-push-server/notifier/mock_notifier"
	"github.com/fieldops/fieldops-push-server/queue"
	"github.com/fieldops/fieldops-push-server/queue/mock_queue"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo"
	"github.com/fieldops/fieldops-push-server/repo/tokenrepo/mock_tokenrepo"
)

var ctx = context.Background()

const userId = "64b7f0c2a1b2c3d4e5f60718"

func TestHandler_Auth(t *testing.T) {
	fx := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/monitor-status", nil)
	rec := httptest.NewRecorder()
	fx.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RegisterToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().Register(gomock.Any(), userId, "ExponentPushToken[abc]", "pixel 7").Return(nil)
		rec := fx.do(http.MethodPost, "/api/push-tokens/register", registerTokenRequest{Token: "ExponentPushToken[abc]", DeviceInfo: "pixel 7"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("empty token", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().Register(gomock.Any(), userId, "", "").Return(domain.ErrEmptyToken)
		rec := fx.do(http.MethodPost, "/api/push-tokens/register", registerTokenRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("invalid body", func(t *testing.T) {
		fx := newFixture(t)
		rec := fx.doRaw(http.MethodPost, "/api/push-tokens/register", []byte("{"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("store error", func(t *testing.T) {
		fx := newFixture(t)
		fx.tokenRepo.EXPECT().Register(gomock.Any(), userId, "t", "").Return(errors.New("mongo down"))
		rec := fx.do(http.MethodPost, "/api/push-tokens/register", registerTokenRequest{Token: "t"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_UnregisterToken(t *testing.T) {
	fx := newFixture(t)
	fx.tokenRepo.EXPECT().Unregister(gomock.Any(), userId).Return(nil)
	rec := fx.do(http.MethodDelete, "/api/push-tokens/unregister", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_SubmitEvent(t *testing.T) {
	t.Run("shared item", func(t *testing.T) {
		fx := newFixture(t)
		var added queue.Message
		fx.queue.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg queue.Message) error {
			added = msg
			return nil
		})
		rec := fx.do(http.MethodPost, "/api/notifications/events", eventRequest{Kind: domain.KindTask, ItemId: "t1", Recipients: []string{"v", "w"}})
		require.Equal(t, http.StatusAccepted, rec.Code)

		var resp eventResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, added.Id, resp.Id)
		assert.NotEmpty(t, added.Id)
		assert.Equal(t, domain.KindTask, added.Kind)
		assert.Equal(t, "t1", added.ItemId)
		assert.Equal(t, []string{"v", "w"}, added.Recipients)
		assert.Equal(t, userId, added.ActorId)
		assert.WithinDuration(t, time.Now(), added.Created, time.Minute)
	})
	t.Run("broadcast", func(t *testing.T) {
		fx := newFixture(t)
		fx.queue.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)
		rec := fx.do(http.MethodPost, "/api/notifications/events", eventRequest{Kind: domain.KindStock})
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
	t.Run("unknown kind", func(t *testing.T) {
		fx := newFixture(t)
		rec := fx.do(http.MethodPost, "/api/notifications/events", eventRequest{Kind: "space", ItemId: "1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("missing item", func(t *testing.T) {
		fx := newFixture(t)
		rec := fx.do(http.MethodPost, "/api/notifications/events", eventRequest{Kind: domain.KindNote})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ListTokens(t *testing.T) {
	fx := newFixture(t)
	fx.tokenRepo.EXPECT().List(gomock.Any()).Return([]domain.PushRegistration{
		{UserId: "a", Token: "ExponentPushToken[a]"},
		{UserId: "b", Token: "local-b"},
	}, nil)
	fx.gateway.EXPECT().IsValidToken("ExponentPushToken[a]").Return(true)
	fx.gateway.EXPECT().IsValidToken("local-b").Return(false)

	rec := fx.do(http.MethodGet, "/api/notifications/tokens", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp tokensResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Valid)
	assert.Equal(t, 1, resp.Invalid)
	require.Len(t, resp.Tokens, 2)
	assert.True(t, resp.Tokens[0].Valid)
	assert.False(t, resp.Tokens[1].Valid)
}

func TestHandler_SendTest(t *testing.T) {
	fx := newFixture(t)
	fx.notifier.EXPECT().Send(gomock.Any(), []string{userId}, gomock.Any()).DoAndReturn(func(_ context.Context, _ []string, n domain.Notification) domain.DeliveryResult {
		assert.Equal(t, "test", n.Data["type"])
		return domain.DeliveryResult{Status: domain.DeliveryStatusNoValidTokens}
	})
	rec := fx.do(http.MethodPost, "/api/notifications/send-test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp resultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.DeliveryStatusNoValidTokens, resp.Result.Status)
}

func TestHandler_SendToUser(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fx := newFixture(t)
		fx.notifier.EXPECT().Send(gomock.Any(), []string{"other"}, gomock.Any()).DoAndReturn(func(_ context.Context, _ []string, n domain.Notification) domain.DeliveryResult {
			assert.Equal(t, "📬 Notificación Manual", n.Title)
			assert.Equal(t, "manual-test", n.Data["type"])
			return domain.DeliveryResult{Status: domain.DeliveryStatusOk, Attempted: 1, Delivered: 1}
		})
		rec := fx.do(http.MethodPost, "/api/notifications/send-to-user", sendToUserRequest{UserId: "other"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("missing user", func(t *testing.T) {
		fx := newFixture(t)
		rec := fx.do(http.MethodPost, "/api/notifications/send-to-user", sendToUserRequest{Title: "hi"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Monitor(t *testing.T) {
	t.Run("force check", func(t *testing.T) {
		fx := newFixture(t)
		fx.monitor.EXPECT().ForceCheck(gomock.Any()).Return(monitor.CycleReport{Kinds: []monitor.KindReport{{Kind: domain.KindNote, Matched: 2, Notified: 2}}})
		rec := fx.do(http.MethodPost, "/api/notifications/force-check", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp monitor.CycleReport
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Kinds, 1)
		assert.Equal(t, 2, resp.Kinds[0].Notified)
	})
	t.Run("status", func(t *testing.T) {
		fx := newFixture(t)
		fx.monitor.EXPECT().Status().Return(monitor.Status{State: monitor.StateRunning, Interval: "2m0s"})
		rec := fx.do(http.MethodGet, "/api/notifications/monitor-status", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp monitor.Status
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, monitor.StateRunning, resp.State)
	})
}

type fixture struct {
	*push
	a         *app.App
	tokenRepo *mock_tokenrepo.MockTokenRepo
	gateway   *mock_gateway.MockGateway
	notifier  *mock_notifier.MockNotifier
	monitor   *mock_monitor.MockMonitor
	queue     *mock_queue.MockQueue
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		push:      New().(*push),
		a:         new(app.App),
		tokenRepo: mock_tokenrepo.NewMockTokenRepo(ctrl),
		gateway:   mock_gateway.NewMockGateway(ctrl),
		notifier:  mock_notifier.NewMockNotifier(ctrl),
		monitor:   mock_monitor.NewMockMonitor(ctrl),
		queue:     mock_queue.NewMockQueue(ctrl),
	}
	fx.tokenRepo.EXPECT().Name().Return(tokenrepo.CName).AnyTimes()
	fx.tokenRepo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.tokenRepo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.tokenRepo.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.gateway.EXPECT().Name().Return(gateway.CName).AnyTimes()
	fx.gateway.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.gateway.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.gateway.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.notifier.EXPECT().Name().Return(notifier.CName).AnyTimes()
	fx.notifier.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.monitor.EXPECT().Name().Return(monitor.CName).AnyTimes()
	fx.monitor.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.monitor.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.monitor.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Name().Return(queue.CName).AnyTimes()
	fx.queue.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Close(gomock.Any()).AnyTimes()

	fx.a.Register(&testConfig{}).
		Register(fx.tokenRepo).
		Register(fx.gateway).
		Register(fx.notifier).
		Register(fx.monitor).
		Register(fx.queue).
		Register(fx.push)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}

func (fx *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}
	return fx.doRaw(method, path, data)
}

func (fx *fixture) doRaw(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(userIdHeader, userId)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	fx.Handler().ServeHTTP(rec, req)
	return rec
}

type testConfig struct{}

func (c *testConfig) Init(a *app.App) (err error) {
	return
}

func (c *testConfig) Name() (name string) {
	return "config"
}

func (c *testConfig) GetAPI() Config {
	return Config{Addr: "127.0.0.1:0"}
}
